package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "registrar"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultAutoMigrate       = true

	DefaultPort               = "5000"
	DefaultLogLevel           = "info"
	DefaultCORSAllowedOrigins = "*"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPhoneRegion = "US"

	DefaultKafkaBookingsTopic = "bookings.created"
	DefaultKafkaCompression   = "snappy"
)
