package config

import "fmt"

const defaultSqlDsn = "root:123456@tcp(127.0.0.1:3306)/treko?charset=utf8mb4&parseTime=True&loc=Local"

type DBConfig struct {
	DSN          string `yaml:"dsn"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxLifetime  int    `yaml:"maxLifetime"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	Region          string `yaml:"region"`
}

func (s3 *S3Config) UrlPrefix() string {
	if s3.UseSSL {
		return fmt.Sprintf("https://%s/%s", s3.Endpoint, s3.Bucket)
	}
	return fmt.Sprintf("http://%s/%s", s3.Endpoint, s3.Bucket)
}

type NSQConfig struct {
	NSQDAddr  string   `yaml:"nsqdAddr"`
	NSQDAddrs []string `yaml:"nsqdAddrs"`
	Topic     string   `yaml:"topic"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type VerifyConfig struct {
	TritonAddr     string  `yaml:"tritonAddr"`
	ModelName      string  `yaml:"modelName"`
	MatchThreshold float64 `yaml:"matchThreshold"`
	ReferencePath  string  `yaml:"referencePath"`
	MaxAttempts    int     `yaml:"maxAttempts"`
	BackoffSec     int     `yaml:"backoffSec"`
}

type Config struct {
	Addr    string       `yaml:"addr"`
	SSLCert string       `yaml:"sslCert"`
	SSLKey  string       `yaml:"sslKey"`
	DB      DBConfig     `yaml:"db"`
	S3      S3Config     `yaml:"s3"`
	NSQ     NSQConfig    `yaml:"nsq"`
	Redis   RedisConfig  `yaml:"redis"`
	Verify  VerifyConfig `yaml:"verify"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr: "127.0.0.1:8081",
		DB: DBConfig{
			DSN:          defaultSqlDsn,
			MaxIdleConns: 100,
			MaxOpenConns: 1000,
			MaxLifetime:  60,
		},
		S3: S3Config{
			Bucket:   "treko",
			Endpoint: "127.0.0.1:9000",
			UseSSL:   false,
			Region:   "us-east-1",
		},
		NSQ: NSQConfig{
			NSQDAddr:  "127.0.0.1:4150",
			NSQDAddrs: []string{"127.0.0.1:4150"},
			Topic:     "headshot_verification",
		},
		Verify: VerifyConfig{
			TritonAddr:     "127.0.0.1:8001",
			ModelName:      "face_match",
			MatchThreshold: 0.8,
			ReferencePath:  "references/%s.jpg",
			MaxAttempts:    3,
			BackoffSec:     5,
		},
	}
}
