package config

import "os"

type Billplz struct {
	APIKey        string
	CollectionID  string
	XSignatureKey string
	BaseURL       string
}

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	PostgresURI string
	RedisURI    string
	AppURL      string
	FrontendURL string
	Billplz     Billplz
	R2          R2
	SecretKey   string
	CookieName  string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", ""),
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Billplz: Billplz{
			APIKey:        getEnv("BILLPLZ_API_KEY", ""),
			CollectionID:  getEnv("BILLPLZ_COLLECTION_ID", ""),
			XSignatureKey: getEnv("BILLPLZ_XSIGNATURE_KEY", ""),
			BaseURL:       getEnv("BILLPLZ_BASE_URL", "https://www.billplz.com"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "billflow_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
