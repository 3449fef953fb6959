package database

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/chainblog-backend/config"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
)

// Database bundles one repository per entity type. The zero value is not usable;
// build it with NewMemory or NewGorm.
type Database struct {
	blogPostRepo      BlogPostRepository
	categoryRepo      CategoryRepository
	tagRepo           TagRepository
	commentRepo       CommentRepository
	likeRepo          LikeRepository
	followRepo        FollowRepository
	userRepo          UserRepository
	userAnalyticsRepo UserAnalyticsRepository

	sample sampleWriter
	sql    *gorm.DB
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces time.Now for every timestamp the repositories stamp
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMemory builds a Database that keeps everything in process memory
func NewMemory(opts ...Option) Database {
	o := buildOptions(opts)
	posts := newMemBlogPostRepo(o.now)
	categories := &memCategoryRepo{table: newMemTable(models.Category.Clone), now: o.now}
	tags := &memTagRepo{table: newMemTable(models.Tag.Clone), now: o.now}

	return Database{
		blogPostRepo:      posts,
		categoryRepo:      categories,
		tagRepo:           tags,
		commentRepo:       &memCommentRepo{table: newMemTable(models.Comment.Clone), now: o.now},
		likeRepo:          &memLikeRepo{table: newMemTable(models.Like.Clone), now: o.now},
		followRepo:        &memFollowRepo{table: newMemTable[models.Follow](nil), now: o.now},
		userRepo:          &memUserRepo{table: newMemTable(models.User.Clone), now: o.now},
		userAnalyticsRepo: &memUserAnalyticsRepo{table: newMemTable(models.UserAnalytics.Clone), now: o.now},
		sample:            memSampleWriter{posts: posts, categories: categories, tags: tags},
	}
}

// NewGorm initializes a Database with each repository using a shared GORM database instance
func NewGorm(db *gorm.DB, opts ...Option) Database {
	o := buildOptions(opts)
	return Database{
		blogPostRepo:      NewBlogPostRepo(db, o.now),
		categoryRepo:      NewCategoryRepo(db, o.now),
		tagRepo:           NewTagRepo(db, o.now),
		commentRepo:       NewCommentRepo(db, o.now),
		likeRepo:          NewLikeRepo(db, o.now),
		followRepo:        NewFollowRepo(db, o.now),
		userRepo:          NewUserRepo(db, o.now),
		userAnalyticsRepo: NewUserAnalyticsRepo(db, o.now),
		sample:            gormSampleWriter{db: db},
		sql:               db,
	}
}

// Open builds the store selected by cfg.DBType. SQL stores are migrated before they are returned.
func Open(cfg config.Config, opts ...Option) (Database, error) {
	var dialector gorm.Dialector
	switch cfg.DBType {
	case config.DBMemory:
		return NewMemory(opts...), nil
	case config.DBPostgres:
		if cfg.DatabaseURL == "" {
			return Database{}, errs.NewConfigError("DATABASE_URL", fmt.Errorf("required when DB_TYPE is %s", cfg.DBType))
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	case config.DBSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return Database{}, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported value %q", cfg.DBType))
	}

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return Database{}, fmt.Errorf("error connecting to database: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return Database{}, fmt.Errorf("error testing database connection: %w", err)
	}

	d := NewGorm(db, opts...)
	if err := d.AutoMigrate(); err != nil {
		return Database{}, err
	}
	return d, nil
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() BlogPostRepository {
	return d.blogPostRepo
}

func (d Database) CategoryRepo() CategoryRepository {
	return d.categoryRepo
}

func (d Database) TagRepo() TagRepository {
	return d.tagRepo
}

func (d Database) CommentRepo() CommentRepository {
	return d.commentRepo
}

func (d Database) LikeRepo() LikeRepository {
	return d.likeRepo
}

func (d Database) FollowRepo() FollowRepository {
	return d.followRepo
}

func (d Database) UserRepo() UserRepository {
	return d.userRepo
}

func (d Database) UserAnalyticsRepo() UserAnalyticsRepository {
	return d.userAnalyticsRepo
}

// SQL returns the gorm handle, nil for the in-memory store
func (d Database) SQL() *gorm.DB {
	return d.sql
}

func (d Database) Backend() string {
	if d.sql == nil {
		return config.DBMemory
	}
	return d.sql.Dialector.Name()
}

// AutoMigrate creates or updates the tables of a SQL store. No-op in memory.
func (d Database) AutoMigrate() error {
	if d.sql == nil {
		return nil
	}
	if err := d.sql.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}
	return nil
}

// Ping checks that the backing store answers
func (d Database) Ping(ctx context.Context) error {
	if d.sql == nil {
		return nil
	}
	sqlDB, err := d.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	if d.sql == nil {
		return nil
	}
	sqlDB, err := d.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
