package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-folder-service/internal/model"
	"github.com/haierkeys/fast-note-folder-service/pkg/fileurl"
	"github.com/haierkeys/fast-note-folder-service/pkg/util"
	"github.com/haierkeys/fast-note-folder-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string // sqlite, mysql, postgres
	Path            string // SQLite 数据库文件路径
	UserName        string
	Password        string
	Host            string // host or host:port
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string // 30m, 1h
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问层，持有数据库连接与写队列
type Dao struct {
	Db         *gorm.DB
	ctx        context.Context
	config     *DatabaseConfig
	logger     *zap.Logger
	writeQueue *writequeue.Manager

	migrateMu   sync.Mutex
	migrateDone map[string]bool
	migrateSF   singleflight.Group
}

// Option Dao 构造选项
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) { d.config = c }
}

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) { d.logger = l }
}

// WithWriteQueueManager sets the per-user write serializer, without it writes run inline
// WithWriteQueueManager 设置写队列管理器，未设置时写操作直接执行
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) { d.writeQueue = m }
}

// New 创建 Dao
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		Db:          db,
		ctx:         ctx,
		config:      &DatabaseConfig{AutoMigrate: true},
		logger:      zap.NewNop(),
		migrateDone: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 返回带 context 的连接
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = d.ctx
	}
	return d.Db.WithContext(ctx)
}

// Logger 获取日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// migrate runs model.AutoMigrate for key once per Dao when auto migration is enabled.
// Concurrent first calls for the same key share one run. A failed migration is retried on the next call.
func (d *Dao) migrate(key string) error {
	if !d.config.AutoMigrate || d.migrated(key) {
		return nil
	}

	_, err, _ := d.migrateSF.Do(key, func() (any, error) {
		if d.migrated(key) {
			return nil, nil
		}
		if err := model.AutoMigrate(d.Db, key); err != nil {
			d.logger.Error("auto migrate failed", zap.String("model", key), zap.Error(err))
			return nil, err
		}
		d.migrateMu.Lock()
		d.migrateDone[key] = true
		d.migrateMu.Unlock()
		return nil, nil
	})
	return err
}

func (d *Dao) migrated(key string) bool {
	d.migrateMu.Lock()
	defer d.migrateMu.Unlock()
	return d.migrateDone[key]
}

// ExecuteWrite runs fn through the write queue of uid
// ExecuteWrite 通过 uid 对应的写队列执行写操作
func (d *Dao) ExecuteWrite(ctx context.Context, uid int64, fn func(db *gorm.DB) error) error {
	run := func() error {
		return fn(d.DB(ctx))
	}
	if d.writeQueue == nil {
		return run()
	}
	return d.writeQueue.Execute(ctx, uid, run)
}

// NewDBEngineWithConfig opens the database described by c and applies pool settings
// NewDBEngineWithConfig 根据配置打开数据库并设置连接池
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if c.RunMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil && lg != nil {
		lg.Warn("gorm tracing plugin not registered", zap.Error(err))
	}

	if lg != nil {
		lg.Info("database connected", zap.String("type", c.Type))
	}

	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			charset,
			c.ParseTime,
		)), nil
	case "postgres":
		host, port := c.Host, "5432"
		if h, p, err := net.SplitHostPort(c.Host); err == nil {
			host, port = h, p
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Local",
			host,
			port,
			c.UserName,
			c.Password,
			c.Name,
		)), nil
	case "sqlite", "":
		if c.Path == "" {
			return nil, errors.New("sqlite path is empty")
		}
		if isFileDSN(c.Path) && !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite directory failed")
			}
		}
		return sqlite.Open(sqliteDSN(c.Path)), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", c.Type)
}

func isFileDSN(path string) bool {
	return path != ":memory:" && !strings.HasPrefix(path, "file:")
}

// sqliteDSN adds a busy timeout so concurrent readers wait for the writer instead of failing
func sqliteDSN(path string) string {
	if !isFileDSN(path) || strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
