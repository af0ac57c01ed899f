package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/usof-platform/usof-backend/internal/logging"
	"github.com/usof-platform/usof-backend/internal/services"
)

// LockScheduler 定时冻结过旧的帖子
type LockScheduler struct {
	cron        *cron.Cron
	postService *services.PostService
	log         *zap.Logger
}

func NewLockScheduler() *LockScheduler {
	// 创建带有秒级精度的cron调度器
	c := cron.New(cron.WithSeconds())

	return &LockScheduler{
		cron:        c,
		postService: services.NewPostService(),
		log:         logging.GetLogger(),
	}
}

// Start 启动调度器
func (s *LockScheduler) Start() error {
	// 每小时整点扫描一次
	_, err := s.cron.AddFunc("0 0 * * * *", s.lockAgedPosts)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Task started! Will run every minute")

	// 启动时立即执行一次扫描
	go s.lockAgedPosts()

	return nil
}

// Stop 停止调度器
func (s *LockScheduler) Stop() {
	s.cron.Stop()
	s.log.Info("lock scheduler stopped")
}

func (s *LockScheduler) lockAgedPosts() {
	locked, err := s.postService.LockAgedPosts()
	if err != nil {
		s.log.Error("failed to lock aged posts", zap.Error(err))
		return
	}

	if locked > 0 {
		s.log.Info("lock sweep completed", zap.Int64("locked", locked))
	}
}

// GetNextRun 获取下次运行时间
func (s *LockScheduler) GetNextRun() []time.Time {
	entries := s.cron.Entries()
	var nextRuns []time.Time

	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return nextRuns
}
