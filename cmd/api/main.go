package main

import (
	"io"
	"log"
	"os"

	"github.com/nuitmaroc/nightlife-api/internal/config"
	"github.com/nuitmaroc/nightlife-api/internal/logging"
	minioRepo "github.com/nuitmaroc/nightlife-api/internal/repository/minio"
	"github.com/nuitmaroc/nightlife-api/internal/repository/postgres"
	"github.com/nuitmaroc/nightlife-api/internal/service"
	transport "github.com/nuitmaroc/nightlife-api/internal/transport/http"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	// Two pools: the restricted role for public reads, the privileged role
	// for admin writes.
	readDB, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect read pool: %v", err)
	}
	defer readDB.Close()

	adminDB, err := postgres.New(cfg.DatabaseAdminURL)
	if err != nil {
		log.Fatalf("connect admin pool: %v", err)
	}
	defer adminDB.Close()

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := minioRepo.NewStorage(minioClient, cfg.MinIOPublicURL)

	catalog := service.NewCatalogService(
		postgres.NewCityRepo(readDB),
		postgres.NewCategoryRepo(readDB),
		postgres.NewTagRepo(readDB),
		postgres.NewVenueRepo(readDB),
		postgres.NewContentRepo(readDB),
		postgres.NewPhotoRepo(readDB),
		postgres.NewCollectionRepo(readDB),
		postgres.NewSearchRepo(readDB),
	)

	audit := service.NewAuditRecorder(postgres.NewAuditLogRepo(adminDB))
	adminVenues := service.NewAdminVenueService(
		postgres.NewVenueRepo(adminDB),
		postgres.NewCityRepo(adminDB),
		postgres.NewCategoryRepo(adminDB),
		postgres.NewTagRepo(adminDB),
		postgres.NewContentRepo(adminDB),
		postgres.NewPhotoRepo(adminDB),
		postgres.NewCollectionRepo(adminDB),
		storage,
		audit,
		cfg.MinIOBucketPhoto,
		cfg.PhotoMaxBytes,
	)
	adminCollections := service.NewAdminCollectionService(
		postgres.NewCollectionRepo(adminDB),
		postgres.NewCityRepo(adminDB),
		audit,
	)

	sessions := util.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	auth, err := service.NewAuthService(cfg.AdminPasswordHash, cfg.AdminPasswordSalt, sessions)
	if err != nil {
		log.Fatalf("configure auth: %v", err)
	}

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterCatalog(e, catalog)
	transport.RegisterSearch(e, catalog)
	transport.RegisterAuth(e, auth, cfg.SecureCookies)
	transport.RegisterAdminVenues(e, auth, adminVenues)
	transport.RegisterAdminCollections(e, auth, adminCollections)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
