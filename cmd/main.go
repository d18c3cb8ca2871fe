package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "ihome/api/v1"
	"ihome/config"
	"ihome/dao"
	"ihome/internal/auth"
	"ihome/internal/cache"
	"ihome/internal/captcha"
	"ihome/internal/sms"
	"ihome/internal/storage"
	myvalidator "ihome/internal/validator"
	"ihome/middleware"
	"ihome/model"
	"ihome/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Area{},
		&model.Facility{},
		&model.House{},
		&model.HouseImage{},
	); err != nil {
		panic(err)
	}

	// 初始化外部网关客户端
	cacheClient := cache.NewRedisClient(config.RedisClient)
	uploader := storage.NewQiniuUploader(
		config.GlobalConfig.Qiniu.AccessKey,
		config.GlobalConfig.Qiniu.SecretKey,
		config.GlobalConfig.Qiniu.Bucket,
	)
	smsSender := sms.NewCCPSender(
		config.GlobalConfig.SMS.APIURL,
		config.GlobalConfig.SMS.AccountSID,
		config.GlobalConfig.SMS.AuthToken,
		config.GlobalConfig.SMS.AppID,
		config.GlobalConfig.SMS.TemplateID,
	)

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	areaDAO := dao.NewAreaDAO(db)
	houseDAO := dao.NewHouseDAO(db)
	sessionTTL := time.Duration(config.GlobalConfig.Session.Expire) * time.Second
	sessionManager := auth.NewSessionManager(cacheClient, sessionTTL)
	domainPrefix := config.GlobalConfig.Qiniu.DomainPrefix

	userService := service.NewUserService(userDAO, sessionManager, uploader, domainPrefix)
	areaService := service.NewAreaService(areaDAO, cacheClient)
	verifyService := service.NewVerifyService(cacheClient, captcha.NewDigitGenerator(), smsSender, userDAO)
	houseService := service.NewHouseService(houseDAO, uploader, domainPrefix)

	userAPI := v1.NewUserAPI(userService, verifyService)
	areaAPI := v1.NewAreaAPI(areaService)
	verifyAPI := v1.NewVerifyAPI(verifyService)
	houseAPI := v1.NewHouseAPI(houseService)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("mobile", myvalidator.IsMobile); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1.0")
	{
		public.GET("/areas", areaAPI.GetAreas)
		public.GET("/imagecode/:id", verifyAPI.ImageCode)
		public.GET("/smscode/:mobile", verifyAPI.SMSCode)
		public.POST("/users", userAPI.Register)
		public.POST("/sessions", userAPI.Login)
	}

	// 私有路由
	private := r.Group("/api/v1.0")
	private.Use(middleware.AuthMiddleware(sessionManager))
	{
		private.DELETE("/session", userAPI.Logout)
		private.GET("/user", userAPI.Profile)
		private.PUT("/user/name", userAPI.UpdateName)
		private.POST("/user/avatar", userAPI.SaveAvatar)
		private.POST("/user/auth", userAPI.SetAuth)
		private.GET("/user/auth", userAPI.GetAuth)
		private.POST("/houses", houseAPI.Create)
		private.POST("/houses/:id/images", houseAPI.UploadImage)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
