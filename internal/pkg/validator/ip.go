package validator

import (
	"net"
	"strings"
)

// UnknownClient 无法识别来源地址时使用的占位
const UnknownClient = "unknown"

// ClientIP 规范化客户端地址，用于限流 key 等场景。
// 去掉 IPv6 zone（fe80::1%eth0 -> fe80::1），IPv4 映射地址还原为 IPv4，
// 无效地址返回 UnknownClient
func ClientIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '%'); idx != -1 {
		raw = raw[:idx]
	}

	ip := net.ParseIP(raw)
	if ip == nil {
		return UnknownClient
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}
