package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/utils"
)

const (
	activityWriteTimeout = 5 * time.Second

	// maxPendingActivityWrites bounds background writes in flight.
	maxPendingActivityWrites = 64
)

// ActivityLogService records storefront activity. A service without a
// database accepts every call and stores nothing.
type ActivityLogService struct {
	db *gorm.DB

	async errgroup.Group
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	s := &ActivityLogService{db: db}
	s.async.SetLimit(maxPendingActivityWrites)
	return s
}

// Enabled reports whether activity is persisted.
func (s *ActivityLogService) Enabled() bool {
	return s != nil && s.db != nil
}

// ActivityRequest contains the parameters for logging an activity
type ActivityRequest struct {
	Kind         string         // models.ActivitySearch, models.ActivityVacante, ...
	Query        string         // search term, when Kind is a search
	ResultCount  int            // number of results shown
	Metadata     map[string]any // extra details stored as JSON
	Status       string         // models.StatusSuccess or models.StatusFailed
	ErrorMessage string
	Context      *gin.Context // for IP and User-Agent extraction
}

// LogActivity stores one activity row. Failures are logged and swallowed:
// analytics never fail a customer request.
func (s *ActivityLogService) LogActivity(req ActivityRequest) {
	if !s.Enabled() {
		return
	}

	var metadata []byte
	if req.Metadata != nil {
		data, err := json.Marshal(req.Metadata)
		if err != nil {
			zap.L().Warn("activity metadata not serializable", zap.String("kind", req.Kind), zap.Error(err))
			data = []byte("{}")
		}
		metadata = data
	}

	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	activity := models.StorefrontActivity{
		Kind:         req.Kind,
		Query:        req.Query,
		ResultCount:  req.ResultCount,
		Metadata:     metadata,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
	}
	if req.Context != nil {
		activity.IPAddress = req.Context.ClientIP()
		activity.UserAgent = req.Context.GetHeader("User-Agent")

		device := utils.ParseUserAgent(activity.UserAgent)
		activity.DeviceType = device.Type
		activity.Browser = device.Browser
		activity.OS = device.OS
	}

	ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		zap.L().Warn("failed to store activity", zap.String("kind", req.Kind), zap.Error(err))
		return
	}

	zap.L().Debug("activity stored",
		zap.String("kind", activity.Kind),
		zap.String("status", activity.Status),
		zap.Int("results", activity.ResultCount),
	)
}

// LogActivityAsync stores the row in the background and reports whether it
// was accepted. When maxPendingActivityWrites are already in flight the row
// is dropped.
func (s *ActivityLogService) LogActivityAsync(req ActivityRequest) bool {
	if !s.Enabled() {
		return false
	}
	accepted := s.async.TryGo(func() error {
		s.LogActivity(req)
		return nil
	})
	if !accepted {
		zap.L().Warn("activity write dropped, too many pending", zap.String("kind", req.Kind))
	}
	return accepted
}

// Wait blocks until every background write has finished.
func (s *ActivityLogService) Wait() {
	if s == nil {
		return
	}
	_ = s.async.Wait()
}

// TopSearches returns the most frequent search terms since the given time.
func (s *ActivityLogService) TopSearches(ctx context.Context, since time.Time, limit int) ([]models.TopSearch, error) {
	if !s.Enabled() {
		return []models.TopSearch{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	top := make([]models.TopSearch, 0, limit)
	err := s.db.WithContext(ctx).
		Model(&models.StorefrontActivity{}).
		Select("query, COUNT(*) AS count").
		Where("kind = ? AND created_at >= ? AND query <> ''", models.ActivitySearch, since).
		Group("query").
		Order("count DESC, query ASC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}
