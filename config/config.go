package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	// Expiry bounds the token lifetime; CookieExpiry bounds the cookie and
	// defaults to the token lifetime when unset.
	Expiry       time.Duration
	CookieExpiry time.Duration
}

type CloudinaryConfig struct {
	CloudName     string
	APIKey        string
	APISecret     string
	UploadFolder  string
	UploadTimeout time.Duration
}

type CORSConfig struct {
	FrontendURL  string
	DashboardURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = 7 * 24 * time.Hour
	}

	cookieExpiry, err := time.ParseDuration(viper.GetString("COOKIE_EXPIRY"))
	if err != nil {
		cookieExpiry = jwtExpiry
	}

	uploadTimeout, err := time.ParseDuration(viper.GetString("CLOUDINARY_UPLOAD_TIMEOUT"))
	if err != nil {
		uploadTimeout = 30 * time.Second
	}

	uploadFolder := viper.GetString("CLOUDINARY_UPLOAD_FOLDER")
	if uploadFolder == "" {
		uploadFolder = "hospital_doctors"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			Expiry:       jwtExpiry,
			CookieExpiry: cookieExpiry,
		},
		Cloudinary: CloudinaryConfig{
			CloudName:     viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:        viper.GetString("CLOUDINARY_API_KEY"),
			APISecret:     viper.GetString("CLOUDINARY_API_SECRET"),
			UploadFolder:  uploadFolder,
			UploadTimeout: uploadTimeout,
		},
		CORS: CORSConfig{
			FrontendURL:  viper.GetString("FRONTEND_URL"),
			DashboardURL: viper.GetString("DASHBOARD_URL"),
		},
	}

	return config, nil
}
