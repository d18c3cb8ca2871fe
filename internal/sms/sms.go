package sms

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Sender 短信网关,params 为模板参数,返回网关状态码,0 表示发送成功
type Sender interface {
	Send(ctx context.Context, mobile string, params []string) (int, error)
}

// CCPSender 云通信 REST 接口实现
type CCPSender struct {
	client     *http.Client
	apiURL     string
	accountSID string
	authToken  string
	appID      string
	templateID string
}

func NewCCPSender(apiURL, accountSID, authToken, appID, templateID string) *CCPSender {
	return &CCPSender{
		client:     &http.Client{Timeout: 10 * time.Second},
		apiURL:     apiURL,
		accountSID: accountSID,
		authToken:  authToken,
		appID:      appID,
		templateID: templateID,
	}
}

type templateSMSRequest struct {
	To         string   `json:"to"`
	AppID      string   `json:"appId"`
	TemplateID string   `json:"templateId"`
	Datas      []string `json:"datas"`
}

type templateSMSResponse struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

// Send 调用模板短信接口,签名规则为 MD5(sid+token+时间戳)
func (s *CCPSender) Send(ctx context.Context, mobile string, params []string) (int, error) {
	now := time.Now().Format("20060102150405")
	sig := strings.ToUpper(fmt.Sprintf("%x", md5.Sum([]byte(s.accountSID+s.authToken+now))))
	url := fmt.Sprintf("%s/Accounts/%s/SMS/TemplateSMS?sig=%s", s.apiURL, s.accountSID, sig)

	body, err := json.Marshal(templateSMSRequest{
		To:         mobile,
		AppID:      s.appID,
		TemplateID: s.templateID,
		Datas:      params,
	})
	if err != nil {
		return -1, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return -1, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("Authorization", base64.StdEncoding.EncodeToString([]byte(s.accountSID+":"+now)))

	resp, err := s.client.Do(req)
	if err != nil {
		return -1, err
	}
	defer resp.Body.Close()

	var result templateSMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return -1, err
	}
	code, err := strconv.Atoi(result.StatusCode)
	if err != nil {
		return -1, fmt.Errorf("sms gateway status %q: %s", result.StatusCode, result.StatusMsg)
	}
	return code, nil
}
