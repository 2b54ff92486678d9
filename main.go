package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-carver/api"
	api_i "github.com/beka-birhanu/vinom-carver/api/i"
	"github.com/beka-birhanu/vinom-carver/api/identity"
	"github.com/beka-birhanu/vinom-carver/api/mazeapi"
	"github.com/beka-birhanu/vinom-carver/config"
	"github.com/beka-birhanu/vinom-carver/infrastruture/cache"
	"github.com/beka-birhanu/vinom-carver/infrastruture/repo"
	"github.com/beka-birhanu/vinom-carver/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-carver/infrastruture/token"
	pb "github.com/beka-birhanu/vinom-carver/maze/pb_encoder"
	"github.com/beka-birhanu/vinom-carver/service"
	"github.com/beka-birhanu/vinom-carver/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The recent index outlives its idle periods by a week.
const recentIndexTTL = 7 * 24 * 60 * 60

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       *repo.UserRepo
	mazeRepo       i.MazeRepo
	layoutCache    i.LayoutCache
	recentQueue    i.SortedQueue
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeCarver
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      general_i.Logger
)

func newLogger(prefix, color string) general_i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	userRepo = repo.NewUserRepo(mongoClient, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initStorage() {
	var err error
	layoutCache, err = cache.NewRedisLayoutCache(redisClient, config.Envs.LayoutCacheTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating layout cache: %v", err))
		os.Exit(1)
	}

	recentQueue, err = sortedstorage.NewRedisSortedQueue(redisClient, recentIndexTTL, int64(config.Envs.RecentMazesCap))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating recent maze index: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Redis storage initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, newLogger("AUTH", config.ColorBlue))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(&service.Config{
		Repo:    mazeRepo,
		Cache:   layoutCache,
		Recent:  recentQueue,
		Encoder: &pb.Protobuf{},
		Logger:  newLogger("CARVER", config.ColorCyan),
		Defaults: service.MazeDefaults{
			Width:  config.Envs.MazeWidth,
			Depth:  config.Envs.MazeDepth,
			StartX: config.Envs.MazeStartX,
			StartZ: config.Envs.MazeStartZ,
		},
		MaxDimension: config.Envs.MazeMaxDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initStorage()
	initJWTTokenizer()
	initAuthService()
	initMazeService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
