package config

import (
	"fmt"

	"launch-sniper/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config 定义整个配置的结构
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Grpc    GrpcConfig    `mapstructure:"grpc"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Trade   TradeConfig   `mapstructure:"trade"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

// GrpcConfig Geyser gRPC 数据源配置
type GrpcConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	XToken   string `mapstructure:"x_token"`
}

// FilterConfig 机会过滤器配置
type FilterConfig struct {
	XCheck              bool     `mapstructure:"x_check"`
	XFilterList         []string `mapstructure:"x_filter_list"`
	XFetchTimeoutSec    int      `mapstructure:"x_fetch_timeout_sec"`
	XFetchRateLimit     int      `mapstructure:"x_fetch_rate_limit"`
	TokenNameCheck      bool     `mapstructure:"token_name_check"`
	TokenNameFilterList []string `mapstructure:"token_name_filter_list"`
	DevBuyCheck         bool     `mapstructure:"dev_buy_check"`
	DevBuyLimit         float64  `mapstructure:"dev_buy_limit"` // SOL
}

// TradeConfig 本地下单参数
type TradeConfig struct {
	WalletPubkey string  `mapstructure:"wallet_pubkey"`
	BuySolAmount float64 `mapstructure:"buy_sol_amount"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

type WorkerConfig struct {
	WorkerNum int `mapstructure:"worker_num"`
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// KafkaConfig 订单提交边界（下游执行服务）配置
type KafkaConfig struct {
	Brokers    string `mapstructure:"brokers"`
	TopicOrder string `mapstructure:"topic_order"`
}

func InitConfig() Config {
	var config Config

	viper.SetConfigName("config.sniper")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config/")

	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	if err := mapstructure.Decode(viper.AllSettings(), &config); err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	return config
}

func WatchConfig(config *Config) {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := InitConfig()
		*config = newConfig
		logger.SetLogLevel(config.Log.Level)
	})
}
