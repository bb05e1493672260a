package guides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KitInput carries a kit name plus the full task set it bundles.
type KitInput struct {
	Name    string
	TaskIDs []uuid.UUID
}

// TaskView is the API shape of an onboarding task.
type TaskView struct {
	ID   uuid.UUID           `json:"id"`
	Type enums.GuideTaskType `json:"type"`
}

// KitView is the API shape of a guide kit.
type KitView struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Tasks []TaskView `json:"tasks"`
}

// GuideView is the API shape of an assigned guide.
type GuideView struct {
	ID           uuid.UUID         `json:"id"`
	AmbassadorID uuid.UUID         `json:"ambassador_id"`
	KitID        uuid.UUID         `json:"kit_id"`
	KitName      string            `json:"kit_name,omitempty"`
	Status       enums.GuideStatus `json:"status"`
}

// Repository defines persistence operations for guide kits and assignments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateTask(ctx context.Context, task *models.GuideTask) (*models.GuideTask, error)
	ListTasks(ctx context.Context) ([]models.GuideTask, error)
	FindTasksByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GuideTask, error)

	CreateKit(ctx context.Context, kit *models.GuideKit) (*models.GuideKit, error)
	FindKit(ctx context.Context, id uuid.UUID) (*models.GuideKit, error)
	ListKits(ctx context.Context) ([]models.GuideKit, error)
	UpdateKit(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteKitTasks(ctx context.Context, kitID uuid.UUID) error
	CreateKitTasks(ctx context.Context, rows []models.GuideKitTask) error
	DeleteKit(ctx context.Context, id uuid.UUID) error

	CreateGuide(ctx context.Context, guide *models.Guide) (*models.Guide, error)
	FindGuide(ctx context.Context, id uuid.UUID) (*models.Guide, error)
	ListGuidesByAmbassador(ctx context.Context, ambassadorID uuid.UUID) ([]models.Guide, error)
	UpdateGuide(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteGuide(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a guides repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateTask(ctx context.Context, task *models.GuideTask) (*models.GuideTask, error) {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *repository) ListTasks(ctx context.Context) ([]models.GuideTask, error) {
	var tasks []models.GuideTask
	if err := r.db.WithContext(ctx).Order("type ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) FindTasksByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GuideTask, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []models.GuideTask
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) CreateKit(ctx context.Context, kit *models.GuideKit) (*models.GuideKit, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(kit).Error; err != nil {
		return nil, err
	}
	return kit, nil
}

func (r *repository) FindKit(ctx context.Context, id uuid.UUID) (*models.GuideKit, error) {
	var kit models.GuideKit
	err := r.db.WithContext(ctx).
		Preload("Tasks.Task").
		Where("id = ?", id).
		First(&kit).Error
	if err != nil {
		return nil, err
	}
	return &kit, nil
}

func (r *repository) ListKits(ctx context.Context) ([]models.GuideKit, error) {
	var kits []models.GuideKit
	err := r.db.WithContext(ctx).
		Preload("Tasks.Task").
		Order("name ASC").
		Find(&kits).Error
	if err != nil {
		return nil, err
	}
	return kits, nil
}

func (r *repository) UpdateKit(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.GuideKit{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteKitTasks(ctx context.Context, kitID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("guide_kit_id = ?", kitID).
		Delete(&models.GuideKitTask{}).Error
}

func (r *repository) CreateKitTasks(ctx context.Context, rows []models.GuideKitTask) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
}

func (r *repository) DeleteKit(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GuideKit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateGuide(ctx context.Context, guide *models.Guide) (*models.Guide, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(guide).Error; err != nil {
		return nil, err
	}
	return guide, nil
}

func (r *repository) FindGuide(ctx context.Context, id uuid.UUID) (*models.Guide, error) {
	var guide models.Guide
	err := r.db.WithContext(ctx).
		Preload("GuideKit.Tasks.Task").
		Where("id = ?", id).
		First(&guide).Error
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *repository) ListGuidesByAmbassador(ctx context.Context, ambassadorID uuid.UUID) ([]models.Guide, error) {
	var out []models.Guide
	err := r.db.WithContext(ctx).
		Preload("GuideKit").
		Where("ambassador_id = ?", ambassadorID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateGuide(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Guide{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteGuide(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Guide{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines guide onboarding operations.
type Service interface {
	CreateTask(ctx context.Context, taskType enums.GuideTaskType) (*TaskView, error)
	ListTasks(ctx context.Context) ([]TaskView, error)

	CreateKit(ctx context.Context, input KitInput) (*KitView, error)
	GetKit(ctx context.Context, id uuid.UUID) (*KitView, error)
	ListKits(ctx context.Context) ([]KitView, error)
	UpdateKit(ctx context.Context, id uuid.UUID, input KitInput) (*KitView, error)
	DeleteKit(ctx context.Context, id uuid.UUID) error

	Assign(ctx context.Context, ambassadorID, kitID uuid.UUID) (*GuideView, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.GuideStatus) (*GuideView, error)
	ListForAmbassador(ctx context.Context, ambassadorID uuid.UUID) ([]GuideView, error)
	Unassign(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a guides service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("guides repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateTask(ctx context.Context, taskType enums.GuideTaskType) (*TaskView, error) {
	if !taskType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid task type")
	}
	task := &models.GuideTask{ID: uuid.New(), Type: taskType}
	if _, err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create task")
	}
	return &TaskView{ID: task.ID, Type: task.Type}, nil
}

func (s *service) ListTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{ID: task.ID, Type: task.Type})
	}
	return views, nil
}

func (s *service) CreateKit(ctx context.Context, input KitInput) (*KitView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kit name required")
	}
	if err := s.ensureTasksExist(ctx, input.TaskIDs); err != nil {
		return nil, err
	}

	kit := &models.GuideKit{ID: uuid.New(), Name: name}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateKit(ctx, kit); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create kit")
		}
		return repo.CreateKitTasks(ctx, kitTaskRows(kit.ID, input.TaskIDs))
	})
	if err != nil {
		return nil, err
	}
	return s.GetKit(ctx, kit.ID)
}

func (s *service) GetKit(ctx context.Context, id uuid.UUID) (*KitView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kit id required")
	}
	kit, err := s.repo.FindKit(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "kit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load kit")
	}
	view := kitView(kit)
	return &view, nil
}

func (s *service) ListKits(ctx context.Context) ([]KitView, error) {
	kits, err := s.repo.ListKits(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list kits")
	}
	views := make([]KitView, 0, len(kits))
	for i := range kits {
		views = append(views, kitView(&kits[i]))
	}
	return views, nil
}

// UpdateKit renames the kit and replaces its task set wholesale.
func (s *service) UpdateKit(ctx context.Context, id uuid.UUID, input KitInput) (*KitView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kit id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kit name required")
	}
	if err := s.ensureTasksExist(ctx, input.TaskIDs); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindKit(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "kit not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load kit")
		}
		if err := repo.UpdateKit(ctx, id, map[string]any{"name": name}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update kit")
		}
		if err := repo.DeleteKitTasks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear kit tasks")
		}
		return repo.CreateKitTasks(ctx, kitTaskRows(id, input.TaskIDs))
	})
	if err != nil {
		return nil, err
	}
	return s.GetKit(ctx, id)
}

func (s *service) DeleteKit(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "kit id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteKitTasks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear kit tasks")
		}
		if err := repo.DeleteKit(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "kit not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete kit")
		}
		return nil
	})
}

func (s *service) Assign(ctx context.Context, ambassadorID, kitID uuid.UUID) (*GuideView, error) {
	if ambassadorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	if _, err := s.GetKit(ctx, kitID); err != nil {
		return nil, err
	}

	guide := &models.Guide{
		ID:           uuid.New(),
		AmbassadorID: ambassadorID,
		GuideKitID:   kitID,
		Status:       enums.GuideStatusNotStarted,
	}
	if _, err := s.repo.CreateGuide(ctx, guide); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign guide")
	}
	return s.guideViewByID(ctx, guide.ID)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.GuideStatus) (*GuideView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guide id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid guide status")
	}
	if _, err := s.repo.FindGuide(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guide not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guide")
	}
	if err := s.repo.UpdateGuide(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guide")
	}
	return s.guideViewByID(ctx, id)
}

func (s *service) ListForAmbassador(ctx context.Context, ambassadorID uuid.UUID) ([]GuideView, error) {
	if ambassadorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	guides, err := s.repo.ListGuidesByAmbassador(ctx, ambassadorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guides")
	}
	views := make([]GuideView, 0, len(guides))
	for i := range guides {
		views = append(views, guideView(&guides[i]))
	}
	return views, nil
}

func (s *service) Unassign(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "guide id required")
	}
	if err := s.repo.DeleteGuide(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "guide not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete guide")
	}
	return nil
}

func (s *service) ensureTasksExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tasks, err := s.repo.FindTasksByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tasks")
	}
	found := map[uuid.UUID]bool{}
	for _, task := range tasks {
		found[task.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return pkgerrors.New(pkgerrors.CodeValidation, "task does not exist: "+id.String())
		}
	}
	return nil
}

func (s *service) guideViewByID(ctx context.Context, id uuid.UUID) (*GuideView, error) {
	guide, err := s.repo.FindGuide(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guide")
	}
	view := guideView(guide)
	return &view, nil
}

func kitTaskRows(kitID uuid.UUID, taskIDs []uuid.UUID) []models.GuideKitTask {
	rows := make([]models.GuideKitTask, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		rows = append(rows, models.GuideKitTask{ID: uuid.New(), GuideKitID: kitID, TaskID: taskID})
	}
	return rows
}

func kitView(kit *models.GuideKit) KitView {
	view := KitView{ID: kit.ID, Name: kit.Name, Tasks: make([]TaskView, 0, len(kit.Tasks))}
	for _, row := range kit.Tasks {
		task := TaskView{ID: row.TaskID}
		if row.Task != nil {
			task.Type = row.Task.Type
		}
		view.Tasks = append(view.Tasks, task)
	}
	return view
}

func guideView(guide *models.Guide) GuideView {
	view := GuideView{
		ID:           guide.ID,
		AmbassadorID: guide.AmbassadorID,
		KitID:        guide.GuideKitID,
		Status:       guide.Status,
	}
	if guide.GuideKit != nil {
		view.KitName = guide.GuideKit.Name
	}
	return view
}
