package main

import (
	"fmt"

	assetsbiz "github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/tidwall/gjson"
)

type manifest struct {
	File     string
	Sections []assetsbiz.SectionInput
}

// parseManifest 解析合并清单，支持 {"file","sections"} 对象或纯数组
func parseManifest(raw []byte) (*manifest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}

	doc := gjson.ParseBytes(raw)
	m := &manifest{}

	items := doc
	if doc.IsObject() {
		m.File = doc.Get("file").String()
		items = doc.Get("sections")
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("manifest has no sections array")
	}

	var parseErr error
	items.ForEach(func(key, value gjson.Result) bool {
		origin := value.Get("originText")
		if !origin.Exists() {
			parseErr = fmt.Errorf("section %d: originText is required", key.Int())
			return false
		}
		status := assetsbiz.Status(value.Get("status").Int())
		if status < assetsbiz.StatusNew || status > assetsbiz.StatusPolished {
			parseErr = fmt.Errorf("section %d: status %d out of range", key.Int(), status)
			return false
		}
		m.Sections = append(m.Sections, assetsbiz.SectionInput{
			OriginText: origin.String(),
			Desc:       value.Get("desc").String(),
			Hash:       value.Get("hash").String(),
			Status:     status,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return m, nil
}
