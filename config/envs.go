package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string // Host IP for the server
	RESTPort      int    // Port for the REST API
	GinMode       string // Mode for the Gin framework (e.g., release, debug, test)
	DBHost        string // Hostname or IP address for the database
	DBPort        int    // Port number for the database
	DBUser        string // Username for the database
	DBPassword    string // Password for the database
	DBName        string // Name of the database
	RedisAddr     string // host:port of the Redis server
	RedisPassword string
	RedisDB       int
	JWTSecret     string // Secret key for JWT signing
	JWTIssuer     string // Issuer claim for JWTs

	MazeWidth        int // Default width of a carved maze
	MazeDepth        int // Default depth of a carved maze
	MazeStartX       int // Default start column
	MazeStartZ       int // Default start row
	MazeMaxDimension int // Largest accepted width or depth
	LayoutCacheTTL   int // Seconds a carved layout stays cached
	RecentMazesCap   int // Mazes kept in the recent index
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:        mustGetEnv("HOST_IP"),
		RESTPort:      mustGetEnvAsInt("REST_PORT"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		DBHost:        mustGetEnv("DB_HOST"),
		DBPort:        mustGetEnvAsInt("DB_PORT"),
		DBUser:        mustGetEnv("DB_USER"),
		DBPassword:    mustGetEnv("DB_PASS"),
		DBName:        mustGetEnv("DB_NAME"),
		RedisAddr:     mustGetEnv("REDIS_ADDR"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsIntWithDefault("REDIS_DB", 0),
		JWTSecret:     mustGetEnv("JWT_SECRET"),
		JWTIssuer:     mustGetEnv("JWT_ISSUER"),

		MazeWidth:        getEnvAsIntWithDefault("MAZE_WIDTH", 5),
		MazeDepth:        getEnvAsIntWithDefault("MAZE_DEPTH", 5),
		MazeStartX:       getEnvAsIntWithDefault("MAZE_START_X", 0),
		MazeStartZ:       getEnvAsIntWithDefault("MAZE_START_Z", 0),
		MazeMaxDimension: getEnvAsIntWithDefault("MAZE_MAX_DIMENSION", 100),
		LayoutCacheTTL:   getEnvAsIntWithDefault("LAYOUT_CACHE_TTL", 3600),
		RecentMazesCap:   getEnvAsIntWithDefault("RECENT_MAZES_CAP", 100),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	return parseInt(key, mustGetEnv(key))
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return parseInt(key, value)
}

func parseInt(key, valueStr string) int {
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
