package models

import "time"

// Family - корневая сущность. Все дети, опекуны и настройки
// принадлежат одной семье.
type Family struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	UID            string        `json:"uid" gorm:"uniqueIndex;size:64"`
	Name           string        `json:"name"`
	Timezone       string        `json:"timezone"` // IANA, например "Asia/Almaty"
	MasterSettings ChildSettings `json:"master_settings" gorm:"serializer:json"`
	// Version увеличивается при каждой записи (optimistic lock).
	Version     int       `json:"version"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Guardian - родитель/опекун. Видит всех детей семьи и может
// обходить ограничения квоты и режима сна.
type Guardian struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UID         string `json:"uid" gorm:"uniqueIndex;size:64"`
	FamilyID    uint   `json:"family_id" gorm:"index"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Lang        string `json:"lang"`
	DeviceToken string `json:"device_token"`
}

// Device - зарегистрированное устройство ребенка.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"` // phone, tablet, tv...
}

type Child struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	UID         string        `json:"uid" gorm:"uniqueIndex;size:64"`
	FamilyID    uint          `json:"family_id" gorm:"index"`
	Name        string        `json:"name"`
	Lang        string        `json:"lang"`
	DeviceToken string        `json:"device_token"`
	Devices     []Device      `json:"devices" gorm:"serializer:json"`
	Settings    ChildSettings `json:"settings" gorm:"serializer:json"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Типы пользователей, приходящие из JWT.
const (
	UserTypeGuardian = "guardian"
	UserTypeChild    = "child"
)

// Actor - кто выполняет операцию (из контекста запроса).
// Elevated выставляется контроллером после успешной проверки
// семейного кода опекуна: ребенок с кодом получает права опекуна
// на одну операцию.
type Actor struct {
	UID      string
	Type     string // UserTypeGuardian | UserTypeChild
	Elevated bool
}

func (a Actor) IsGuardian() bool  { return a.Type == UserTypeGuardian }
func (a Actor) Privileged() bool  { return a.IsGuardian() || a.Elevated }
