package stream

import (
	"context"
	"fmt"
	"time"

	"launch-sniper/internal/sniper/config"
	"launch-sniper/internal/sniper/decoder"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
)

const maxRecvMsgSize = 64 * 1024 * 1024

// Source 流更新来源，consumer 只依赖这个接口
type Source interface {
	Recv() (*pb.SubscribeUpdate, error)
	Close() error
}

// GeyserSource 基于 yellowstone geyser gRPC 的实时交易流。
// 订阅涉及目标 venue 程序的非投票成功交易，commitment 取 processed 抢最低延迟。
type GeyserSource struct {
	conn   *grpc.ClientConn
	stream pb.Geyser_SubscribeClient
	cancel context.CancelFunc
	tl     *zap.Logger
}

func NewGeyserSource(ctx context.Context, cfg config.GrpcConfig, logger *zap.Logger) (*GeyserSource, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, "")),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                10 * time.Second,
			Timeout:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxRecvMsgSize)),
	}

	conn, err := grpc.NewClient(cfg.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial geyser: %w", err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	if cfg.XToken != "" {
		streamCtx = metadata.NewOutgoingContext(streamCtx, metadata.New(map[string]string{"x-token": cfg.XToken}))
	}

	stream, err := pb.NewGeyserClient(conn).Subscribe(streamCtx)
	if err != nil {
		cancel()
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	if err := stream.Send(newSubscribeRequest()); err != nil {
		cancel()
		_ = conn.Close()
		return nil, fmt.Errorf("send subscribe request: %w", err)
	}

	logger.Info("✅ geyser stream subscribed", zap.String("endpoint", cfg.Endpoint))
	return &GeyserSource{conn: conn, stream: stream, cancel: cancel, tl: logger}, nil
}

// newSubscribeRequest 只订阅涉及三个 venue 程序的交易，过滤掉投票与失败交易
func newSubscribeRequest() *pb.SubscribeRequest {
	vote := false
	failed := false
	commitment := pb.CommitmentLevel_PROCESSED

	return &pb.SubscribeRequest{
		Transactions: map[string]*pb.SubscribeRequestFilterTransactions{
			"launch": {
				Vote:   &vote,
				Failed: &failed,
				AccountInclude: []string{
					decoder.RaydiumLaunchpadProgramID.String(),
					decoder.PumpFunProgramID.String(),
					decoder.MoonshotProgramID.String(),
				},
			},
		},
		Commitment: &commitment,
	}
}

func (s *GeyserSource) Recv() (*pb.SubscribeUpdate, error) {
	return s.stream.Recv()
}

func (s *GeyserSource) Close() error {
	s.cancel()
	if err := s.stream.CloseSend(); err != nil {
		s.tl.Warn("⚠️ stream close send failed", zap.Error(err))
	}
	return s.conn.Close()
}
