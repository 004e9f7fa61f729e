package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const meetingBaseURL = "https://meet.jit.si"

// MeetingLink создаёт ссылку на видеокомнату урока. Имя комнаты содержит
// дату, id урока и случайный суффикс, чтобы комнату нельзя было угадать
// по одному только номеру урока.
func MeetingLink(date string, lessonID int64) string {
	subject := "accordo_" + strings.ReplaceAll(date, "-", "_")
	roomID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s/%s_lesson_%d_%s", meetingBaseURL, subject, lessonID, roomID)
}
