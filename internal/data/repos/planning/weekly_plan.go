package planning

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type WeeklyPlanRepo interface {
	Create(dbc dbctx.Context, plan *types.WeeklyPlan) (*types.WeeklyPlan, error)
	GetByID(dbc dbctx.Context, userID, planID uuid.UUID) (*types.WeeklyPlan, error)
	GetCurrent(dbc dbctx.Context, userID uuid.UUID) (*types.WeeklyPlan, error)
	List(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.WeeklyPlan, error)
	UpdateThemes(dbc dbctx.Context, plan *types.WeeklyPlan) error
	UpdateStatus(dbc dbctx.Context, userID, planID uuid.UUID, status string) error
}

type weeklyPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyPlanRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyPlanRepo {
	repoLog := baseLog.With("repo", "WeeklyPlanRepo")
	return &weeklyPlanRepo{db: db, log: repoLog}
}

func (r *weeklyPlanRepo) Create(dbc dbctx.Context, plan *types.WeeklyPlan) (*types.WeeklyPlan, error) {
	if err := dbc.Conn(r.db).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *weeklyPlanRepo) GetByID(dbc dbctx.Context, userID, planID uuid.UUID) (*types.WeeklyPlan, error) {
	var p types.WeeklyPlan
	err := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetCurrent returns the most recently started active plan.
func (r *weeklyPlanRepo) GetCurrent(dbc dbctx.Context, userID uuid.UUID) (*types.WeeklyPlan, error) {
	var p types.WeeklyPlan
	err := dbc.Conn(r.db).
		Where("user_id = ? AND status = ?", userID, types.PlanActive).
		Order("week_start DESC, created_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *weeklyPlanRepo) List(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.WeeklyPlan, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []*types.WeeklyPlan
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("week_start DESC, created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *weeklyPlanRepo) UpdateThemes(dbc dbctx.Context, plan *types.WeeklyPlan) error {
	res := dbc.Conn(r.db).
		Model(&types.WeeklyPlan{}).
		Where("id = ? AND user_id = ?", plan.ID, plan.UserID).
		Updates(map[string]any{
			"themes":     plan.Themes,
			"goals":      plan.Goals,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *weeklyPlanRepo) UpdateStatus(dbc dbctx.Context, userID, planID uuid.UUID, status string) error {
	res := dbc.Conn(r.db).
		Model(&types.WeeklyPlan{}).
		Where("id = ? AND user_id = ?", planID, userID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
