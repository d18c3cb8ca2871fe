package captcha

import (
	"bytes"

	"github.com/mojocn/base64Captcha"
)

// Generator 生成一张验证码图片及其明文答案,编号由调用方提供
type Generator interface {
	Generate() (text string, image []byte, err error)
}

// DigitGenerator 基于 base64Captcha 的数字验证码实现
type DigitGenerator struct {
	driver *base64Captcha.DriverDigit
}

func NewDigitGenerator() *DigitGenerator {
	return &DigitGenerator{driver: base64Captcha.NewDriverDigit(48, 128, 4, 0.7, 80)}
}

// Generate 返回验证码明文与 PNG 图片字节
func (g *DigitGenerator) Generate() (string, []byte, error) {
	_, content, answer := g.driver.GenerateIdQuestionAnswer()
	item, err := g.driver.DrawCaptcha(content)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if _, err := item.WriteTo(&buf); err != nil {
		return "", nil, err
	}
	return answer, buf.Bytes(), nil
}
