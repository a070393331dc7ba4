// igp-generator/models/chat.go
package models

import "gorm.io/gorm"

// AdvisingChat - переписка студента с ИИ-советником (или каунселором).
// У каждого студента один чат с советником; создается лениво при первом сообщении.
type AdvisingChat struct {
	gorm.Model
	StudentID uint   `json:"studentId" gorm:"unique;not null"`
	Type      string `json:"type" gorm:"type:varchar(20);default:'advisor'"` // 'advisor', 'counselor'
}

// AdvisingMessage представляет одно сообщение в чате советника.
type AdvisingMessage struct {
	gorm.Model
	ChatID  uint   `json:"chatId" gorm:"not null"`
	UserID  uint   `json:"userId"` // 0 = сообщение от ИИ-советника
	Role    string `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Content string `json:"content"`
}
