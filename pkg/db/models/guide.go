package models

import (
	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/pkg/enums"
)

// GuideTask is a single onboarding task (take a merch photo, leave a review...).
type GuideTask struct {
	ID   uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Type enums.GuideTaskType `gorm:"column:type;type:text;not null"`
}

// GuideKit is a named bundle of guide tasks.
type GuideKit struct {
	ID    uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name  string         `gorm:"column:name;not null"`
	Tasks []GuideKitTask `gorm:"foreignKey:GuideKitID;constraint:OnDelete:CASCADE"`
}

// GuideKitTask joins tasks into kits.
type GuideKitTask struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	GuideKitID uuid.UUID  `gorm:"column:guide_kit_id;type:uuid;not null"`
	TaskID     uuid.UUID  `gorm:"column:task_id;type:uuid;not null"`
	Task       *GuideTask `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// Guide assigns a kit to an ambassador and tracks progress.
type Guide struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	AmbassadorID uuid.UUID         `gorm:"column:ambassador_id;type:uuid;not null"`
	Ambassador   *Ambassador       `gorm:"foreignKey:AmbassadorID;constraint:OnDelete:CASCADE"`
	GuideKitID   uuid.UUID         `gorm:"column:guide_kit_id;type:uuid;not null"`
	GuideKit     *GuideKit         `gorm:"foreignKey:GuideKitID;constraint:OnDelete:CASCADE"`
	Status       enums.GuideStatus `gorm:"column:status;type:text;not null;default:'not_started'"`
}
