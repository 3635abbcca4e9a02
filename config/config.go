package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type SystemConfig struct {
	Appid    string `mapstructure:"appid" json:"appid"`
	Location string `mapstructure:"location" json:"location"`
	Workdir  string `mapstructure:"workdir" json:"workdir"`
}

type WebConfig struct {
	Host  string `mapstructure:"host" json:"host"`
	Port  int    `mapstructure:"port" json:"port"`
	Debug bool   `mapstructure:"debug" json:"debug"`
}

type DBConfig struct {
	Type     string `mapstructure:"type" json:"type"`
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Name     string `mapstructure:"name" json:"name"`
	User     string `mapstructure:"user" json:"user"`
	Passwd   string `mapstructure:"passwd" json:"passwd"`
	MaxConn  int    `mapstructure:"max_conn" json:"max_conn"`
	IdleConn int    `mapstructure:"idle_conn" json:"idle_conn"`
	Debug    bool   `mapstructure:"debug" json:"debug"`
}

// AdminConfig holds the two process-wide admin credential values. Admin
// login compares against these, not against stored users.
type AdminConfig struct {
	Email    string `mapstructure:"email" json:"email"`
	Password string `mapstructure:"password" json:"password"`
}

// AuthConfig controls token issuance. TTL of zero means tokens never expire;
// deployments should set a positive TTL.
type AuthConfig struct {
	JwtSecret string `mapstructure:"jwt_secret" json:"jwt_secret"`
	TokenTTL  string `mapstructure:"token_ttl" json:"token_ttl"`
}

// CheckoutGatewayConfig configures the redirect-checkout payment provider.
type CheckoutGatewayConfig struct {
	ApiUrl    string `mapstructure:"api_url" json:"api_url"`
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`
}

// CollectGatewayConfig configures the order/verify payment provider.
type CollectGatewayConfig struct {
	ApiUrl    string `mapstructure:"api_url" json:"api_url"`
	KeyID     string `mapstructure:"key_id" json:"key_id"`
	KeySecret string `mapstructure:"key_secret" json:"key_secret"`
}

type ImageStoreConfig struct {
	UploadUrl    string `mapstructure:"upload_url" json:"upload_url"`
	UploadPreset string `mapstructure:"upload_preset" json:"upload_preset"`
	Workers      int    `mapstructure:"workers" json:"workers"`
}

type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	SmtpHost string `mapstructure:"smtp_host" json:"smtp_host"`
	SmtpPort int    `mapstructure:"smtp_port" json:"smtp_port"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	From     string `mapstructure:"from" json:"from"`
}

type LoggerConfig struct {
	Mode       string `mapstructure:"mode" json:"mode"`
	FileEnable bool   `mapstructure:"file_enable" json:"file_enable"`
	Filename   string `mapstructure:"filename" json:"filename"`
}

// AppConfig is the immutable process configuration, loaded once at startup
// and injected into the application. Handlers never read the environment.
type AppConfig struct {
	System     SystemConfig          `mapstructure:"system" json:"system"`
	Web        WebConfig             `mapstructure:"web" json:"web"`
	Database   DBConfig              `mapstructure:"database" json:"database"`
	Admin      AdminConfig           `mapstructure:"admin" json:"admin"`
	Auth       AuthConfig            `mapstructure:"auth" json:"auth"`
	Checkout   CheckoutGatewayConfig `mapstructure:"checkout" json:"checkout"`
	Collect    CollectGatewayConfig  `mapstructure:"collect" json:"collect"`
	ImageStore ImageStoreConfig      `mapstructure:"imagestore" json:"imagestore"`
	Mail       MailConfig            `mapstructure:"mail" json:"mail"`
	Logger     LoggerConfig          `mapstructure:"logger" json:"logger"`
}

func setDefaults() {
	viper.SetDefault("system.appid", "storefront")
	viper.SetDefault("system.location", "Asia/Kolkata")
	viper.SetDefault("system.workdir", "/var/storefront")
	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", 4000)
	viper.SetDefault("database.type", "postgres")
	viper.SetDefault("database.host", "127.0.0.1")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "storefront")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.max_conn", 100)
	viper.SetDefault("database.idle_conn", 10)
	viper.SetDefault("imagestore.workers", 4)
	viper.SetDefault("logger.mode", "development")
}

// Load reads the named config file; STOREFRONT_CONFIG_FILE overrides the path.
func Load(path string) (*AppConfig, error) {
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		path = env
	}
	setDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
