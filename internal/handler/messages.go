package handler

import (
	"fmt"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/fsm"
)

// Callback actions
const (
	actionSubscribed = "subscribed"
	actionSubject    = "subject"
	actionExport     = "export"
	actionRate       = "rate"
)

const (
	msgAlreadyRegistered = "Siz allaqachon ro'yxatdan o'tgansiz."
	msgSubscribe         = "Iltimos, quyidagi kanallarga a'zo bo'ling:"
	msgSubscribed        = "A'zo bo'ldim"
	msgChannelButton     = "%d-kanalga a'zo bo'ling"
	msgAskName           = "Tasdiqlash uchun rahmat! Endi, iltimos, ismingizni kiriting:"
	msgAskSurname        = "Endi, iltimos, familiyangizni kiriting:"
	msgAskSchool         = "Qaysi maktabda o'qiysiz?"
	msgAskClass          = "Qaysi sinfda o'qiysiz?"
	msgChooseSubject     = "Qaysi fan boyicha olimpiadaga qatnashmoqchisiz?"
	msgRegistered        = "Ro'yxatdan o'tkazish yakunlandi. Sizning tartib raqamingiz: %d. Tanlagan faningiz: %s"
	msgAdminPanel        = "Admin paneli:"
	msgRateButton        = "Baholash"
	msgAskStudentID      = "Qaysi raqamdagi o'quvchiga bal qo'ymoqchisiz?"
	msgAskScore          = "Nechi bal qo'ymoqchisiz?"
	msgScoreNotNumber    = "Iltimos, raqam kiriting."
	msgScoreSaved        = "Ball muvaffaqiyatli qo'shildi."
	msgStudentNotFound   = "O'quvchi topilmadi."
	msgPermissionDenied  = "Sizda administrator huquqlari yo'q."
	msgNoParticipants    = "Ushbu fandan ro'yxatga olingan foydalanuvchilar yo'q."
	msgFailure           = "Xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring."
)

var staticMessages = map[fsm.Prompt]string{
	fsm.PromptAlreadyRegistered: msgAlreadyRegistered,
	fsm.PromptAskName:           msgAskName,
	fsm.PromptAskSurname:        msgAskSurname,
	fsm.PromptAskSchool:         msgAskSchool,
	fsm.PromptAskClass:          msgAskClass,
	fsm.PromptAskStudentID:      msgAskStudentID,
	fsm.PromptAskScore:          msgAskScore,
	fsm.PromptScoreNotNumber:    msgScoreNotNumber,
	fsm.PromptScoreSaved:        msgScoreSaved,
	fsm.PromptStudentNotFound:   msgStudentNotFound,
	fsm.PromptPermissionDenied:  msgPermissionDenied,
	fsm.PromptNoParticipants:    msgNoParticipants,
	fsm.PromptFailure:           msgFailure,
}

// render turns a reply into message text and keyboard.
// It returns an empty text for PromptNone.
func (h *Handler) render(reply fsm.Reply) (string, [][]Button) {
	switch reply.Prompt {
	case fsm.PromptNone:
		return "", nil
	case fsm.PromptSubscribe:
		return msgSubscribe, h.subscribeKeyboard()
	case fsm.PromptChooseSubject:
		return msgChooseSubject, subjectKeyboard(actionSubject)
	case fsm.PromptRegistered:
		return fmt.Sprintf(msgRegistered, reply.RecordID, reply.Subject), nil
	case fsm.PromptAdminPanel:
		rows := subjectKeyboard(actionExport)
		rows = append(rows, []Button{{Label: msgRateButton, Action: actionRate}})
		return msgAdminPanel, rows
	}

	if text, ok := staticMessages[reply.Prompt]; ok {
		return text, nil
	}
	return msgFailure, nil
}

func (h *Handler) subscribeKeyboard() [][]Button {
	rows := make([][]Button, 0, len(h.channelLinks)+1)
	for i, link := range h.channelLinks {
		rows = append(rows, []Button{{Label: fmt.Sprintf(msgChannelButton, i+1), URL: link}})
	}
	return append(rows, []Button{{Label: msgSubscribed, Action: actionSubscribed}})
}

func subjectKeyboard(action string) [][]Button {
	rows := make([][]Button, 0, len(domain.Subjects))
	for _, s := range domain.Subjects {
		rows = append(rows, []Button{{Label: s.Title(), Action: action, Payload: string(s)}})
	}
	return rows
}
