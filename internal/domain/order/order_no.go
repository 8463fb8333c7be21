package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 设计原则：全局唯一、时间有序（便于分库分表）、不可预测（防止遍历）
//
// 格式：ORD + 时间戳(秒) + 6位随机数
// 示例：ORD1699248000123456
//
// 生产环境可替换为雪花算法等分布式唯一ID
func GenerateOrderNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("ORD%d%06d", timestamp, random)
}
