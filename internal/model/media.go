package model

import (
	"time"

	"gorm.io/gorm"
)

type ScreenshotLog struct {
	Id          int       `json:"id" gorm:"primaryKey"`
	SessionId   int       `json:"session_id" gorm:"index"`
	Url         string    `json:"url" gorm:"type:text"`
	WindowTitle string    `json:"window_title" gorm:"type:text"`
	Timestamp   time.Time `json:"timestamp" gorm:"datetime;index"`
}

type HeadshotLog struct {
	Id        int                `json:"id" gorm:"primaryKey"`
	SessionId int                `json:"session_id" gorm:"index"`
	Url       string             `json:"url" gorm:"type:text"`
	Status    VerificationStatus `json:"status" gorm:"type:char(20);default:'PENDING'"`
	Timestamp time.Time          `json:"timestamp" gorm:"datetime;index"`
}

func AddScreenshotLogs(tx *gorm.DB, logs []ScreenshotLog) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.Create(&logs).Error
}

func AddHeadshotLogs(tx *gorm.DB, logs []HeadshotLog) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.Create(&logs).Error
}

func ListScreenshotLogsBySession(sessionId int) ([]ScreenshotLog, error) {
	var logs []ScreenshotLog
	if err := DB.Where("session_id = ?", sessionId).Order("timestamp").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func ListHeadshotLogsBySession(sessionId int) ([]HeadshotLog, error) {
	var logs []HeadshotLog
	if err := DB.Where("session_id = ?", sessionId).Order("timestamp").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
