package biz

import (
	"crypto/md5"
	"encoding/hex"
	"io"
)

// GenerateHash derives the content hash of a section: MD5 over originText
// followed by desc, written into one digest without a separator.
func GenerateHash(originText, desc string) string {
	h := md5.New()
	io.WriteString(h, originText)
	io.WriteString(h, desc)
	return hex.EncodeToString(h.Sum(nil))
}
