package models

// DefaultDailyTotalMinutes применяется, когда лимит для ребенка еще
// не настроен.
const DefaultDailyTotalMinutes = 120

// Границы разумной длительности для quick-add и бонусных активностей.
const (
	MinSessionMinutes = 1
	MaxSessionMinutes = 300
)

// DayLimits - лимиты на один тип дня (будни или выходные).
// DailyTotal == nil означает "не настроено" - резолвер подставит
// значение по умолчанию.
type DayLimits struct {
	DailyTotal *int           `json:"daily_total,omitempty"`
	PerDevice  map[string]int `json:"per_device,omitempty"`
	PerApp     map[string]int `json:"per_app,omitempty"`
}

type Limits struct {
	Weekday DayLimits `json:"weekday"`
	Weekend DayLimits `json:"weekend"`
}

// BonusActivity - активность, за которую ребенок зарабатывает
// экранное время. Ratio - бонусных минут за минуту активности.
type BonusActivity struct {
	Enabled     bool    `json:"enabled"`
	Ratio       float64 `json:"ratio"`
	Description string  `json:"description,omitempty"`
}

// BedtimeWindow - окно сна в локальном времени семьи, формат "HH:mm".
// Окно через полночь (Bedtime > WakeTime) - нормальный случай.
type BedtimeWindow struct {
	Bedtime  string `json:"bedtime"`
	WakeTime string `json:"wake_time"`
}

type BedtimeRestrictions struct {
	Weekday *BedtimeWindow `json:"weekday,omitempty"`
	Weekend *BedtimeWindow `json:"weekend,omitempty"`
}

// ChildSettings - все настройки одного ребенка.
type ChildSettings struct {
	Limits          Limits                   `json:"limits"`
	BonusActivities map[string]BonusActivity `json:"bonus_activities,omitempty"`
	Bedtime         BedtimeRestrictions      `json:"bedtime_restrictions"`
	RequireApproval bool                     `json:"require_approval"`
}

// SettingsPatch - типизированное частичное обновление настроек.
// Заполненное поле заменяет соответствующий блок целиком; Clear*
// сбрасывает окно сна. Заменяет прежние обновления по строковым
// путям вида "limits.weekday.dailyTotal".
type SettingsPatch struct {
	WeekdayLimits       *DayLimits                `json:"weekday_limits,omitempty"`
	WeekendLimits       *DayLimits                `json:"weekend_limits,omitempty"`
	WeekdayBedtime      *BedtimeWindow            `json:"weekday_bedtime,omitempty"`
	WeekendBedtime      *BedtimeWindow            `json:"weekend_bedtime,omitempty"`
	ClearWeekdayBedtime bool                      `json:"clear_weekday_bedtime,omitempty"`
	ClearWeekendBedtime bool                      `json:"clear_weekend_bedtime,omitempty"`
	BonusActivities     *map[string]BonusActivity `json:"bonus_activities,omitempty"`
	RequireApproval     *bool                     `json:"require_approval,omitempty"`
}

// IsEmpty сообщает, что патч не меняет ни одного блока.
func (p SettingsPatch) IsEmpty() bool {
	return p.WeekdayLimits == nil && p.WeekendLimits == nil &&
		p.WeekdayBedtime == nil && p.WeekendBedtime == nil &&
		!p.ClearWeekdayBedtime && !p.ClearWeekendBedtime &&
		p.BonusActivities == nil && p.RequireApproval == nil
}

// Apply накладывает патч на настройки и возвращает список
// измененных блоков (для событий setting_changed).
func (p SettingsPatch) Apply(s *ChildSettings) []string {
	var changed []string
	if p.WeekdayLimits != nil {
		s.Limits.Weekday = *p.WeekdayLimits
		changed = append(changed, "limits.weekday")
	}
	if p.WeekendLimits != nil {
		s.Limits.Weekend = *p.WeekendLimits
		changed = append(changed, "limits.weekend")
	}
	if p.WeekdayBedtime != nil {
		s.Bedtime.Weekday = p.WeekdayBedtime
		changed = append(changed, "bedtime.weekday")
	} else if p.ClearWeekdayBedtime {
		s.Bedtime.Weekday = nil
		changed = append(changed, "bedtime.weekday")
	}
	if p.WeekendBedtime != nil {
		s.Bedtime.Weekend = p.WeekendBedtime
		changed = append(changed, "bedtime.weekend")
	} else if p.ClearWeekendBedtime {
		s.Bedtime.Weekend = nil
		changed = append(changed, "bedtime.weekend")
	}
	if p.BonusActivities != nil {
		s.BonusActivities = *p.BonusActivities
		changed = append(changed, "bonus_activities")
	}
	if p.RequireApproval != nil {
		s.RequireApproval = *p.RequireApproval
		changed = append(changed, "require_approval")
	}
	return changed
}
