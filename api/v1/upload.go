package v1

import (
	"io"
	"mime/multipart"
)

// readFormFile 读取 multipart 文件的全部字节
func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
