package bot

import (
	"errors"
	"fmt"
	"strings"

	"goalboard/internal/app/comment"
	"goalboard/internal/app/goal"
	"goalboard/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Worker runs the Telegram long-polling loop. Unlinked chats get a
// fresh verification code on every message; linked chats get commands
// plus board-activity notifications fanned out from the event bus.
type Worker struct {
	api     *tgbotapi.BotAPI
	service Service
	goalSvc goal.Service
	logger  *zap.SugaredLogger
}

func NewWorker(token string, service Service, goalSvc goal.Service, eventBus *utils.EventBus, logger *zap.Logger) (*Worker, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	w := &Worker{
		api:     api,
		service: service,
		goalSvc: goalSvc,
		logger:  logger.Sugar(),
	}

	eventBus.Subscribe(goal.CreatedEventName, w.onGoalCreated)
	eventBus.Subscribe(comment.CreatedEventName, w.onCommentCreated)
	eventBus.Subscribe(LinkedEventName, w.onLinked)

	w.logger.Infow("Telegram bot authorized", "username", api.Self.UserName)
	return w, nil
}

func (w *Worker) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range w.api.GetUpdatesChan(u) {
		w.handleUpdate(update)
	}
}

func (w *Worker) Stop() {
	w.api.StopReceivingUpdates()
}

func (w *Worker) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.Chat.IsPrivate() {
		return
	}
	chatID := msg.Chat.ID

	tgUser, err := w.service.GetByChatID(chatID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		w.logger.Errorw("Failed to fetch tg user", "tg_chat_id", chatID, "error", err)
		return
	}

	if err != nil || tgUser.UserID == nil {
		w.sendCode(msg)
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case "/start":
		w.send(chatID, "Your account is linked. Use /goals to see your active goals.")
	case "/goals":
		w.sendGoals(chatID, *tgUser.UserID)
	default:
		w.send(chatID, "Unknown command. Available: /goals")
	}
}

func (w *Worker) sendCode(msg *tgbotapi.Message) {
	tgUser, err := w.service.IssueCode(msg.From.ID, msg.Chat.ID, msg.From.UserName)
	if err != nil {
		w.logger.Errorw("Failed to issue verification code", "tg_chat_id", msg.Chat.ID, "error", err)
		return
	}
	w.send(msg.Chat.ID, fmt.Sprintf(
		"Verification code: %s\nEnter it in the app to link your account.",
		tgUser.VerificationCode,
	))
}

func (w *Worker) sendGoals(chatID int64, userID uint64) {
	goals, _, err := w.goalSvc.GetGoals(userID, goal.ListFilter{Page: 1, Limit: 20}, "priority")
	if err != nil {
		w.logger.Errorw("Failed to list goals for bot", "user_id", userID, "error", err)
		w.send(chatID, "Failed to fetch your goals, try again later.")
		return
	}
	if len(goals) == 0 {
		w.send(chatID, "You have no active goals.")
		return
	}

	var b strings.Builder
	b.WriteString("Your active goals:\n")
	for _, g := range goals {
		b.WriteString(fmt.Sprintf("#%d %s [%s]", g.ID, g.Title, g.Status))
		if g.DueDate != nil {
			b.WriteString(" due " + g.DueDate.Format("02.01.2006"))
		}
		b.WriteString("\n")
	}
	w.send(chatID, b.String())
}

func (w *Worker) onGoalCreated(event utils.Event) {
	e, ok := event.Data.(goal.CreatedEvent)
	if !ok {
		return
	}
	w.notifyBoard(e.BoardID, e.AuthorID, fmt.Sprintf("New goal on your board: %s", e.Title))
}

func (w *Worker) onCommentCreated(event utils.Event) {
	e, ok := event.Data.(comment.CreatedEvent)
	if !ok {
		return
	}
	w.notifyBoard(e.BoardID, e.AuthorID, fmt.Sprintf("New comment on goal %q", e.GoalTitle))
}

func (w *Worker) onLinked(event utils.Event) {
	e, ok := event.Data.(LinkedEvent)
	if !ok {
		return
	}
	w.send(e.ChatID, "Verification completed, your account is linked.")
}

func (w *Worker) notifyBoard(boardID, excludeUserID uint64, text string) {
	chatIDs, err := w.service.ChatsToNotify(boardID, excludeUserID)
	if err != nil {
		w.logger.Warnw("Failed to resolve chats for notification", "board_id", boardID, "error", err)
		return
	}
	for _, chatID := range chatIDs {
		w.send(chatID, text)
	}
}

func (w *Worker) send(chatID int64, text string) {
	if _, err := w.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		w.logger.Warnw("Failed to send telegram message", "tg_chat_id", chatID, "error", err)
	}
}
