package writer

import (
	"context"

	"launch-sniper/internal/sniper/model"
)

// Submitter 订单提交边界：接收参数化完成的订单，移交下游签名执行服务
type Submitter interface {
	Submit(ctx context.Context, order model.Order) error
	Close() error
}
