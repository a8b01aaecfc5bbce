package helper

import (
	"estate_market/constants"
	"estate_market/model"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrInvalidChatId = errors.New("invalid chat id")

func CommunityChatId(projectId uint) string {
	return fmt.Sprintf("community_%d", projectId)
}

func SupportChatId(projectId, accountId uint) string {
	return fmt.Sprintf("support_%d_%d", projectId, accountId)
}

// ChatRef is a parsed chat id. AccountId is only set for support chats.
type ChatRef struct {
	Type      string
	ProjectId uint
	AccountId uint
}

func ParseChatId(chatId string) (ChatRef, error) {
	parts := strings.Split(chatId, "_")
	parseId := func(s string) (uint, error) {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil || v == 0 {
			return 0, ErrInvalidChatId
		}
		return uint(v), nil
	}
	switch {
	case len(parts) == 2 && parts[0] == "community":
		projectId, err := parseId(parts[1])
		if err != nil {
			return ChatRef{}, err
		}
		return ChatRef{Type: constants.CHAT_COMMUNITY, ProjectId: projectId}, nil
	case len(parts) == 3 && parts[0] == "support":
		projectId, err := parseId(parts[1])
		if err != nil {
			return ChatRef{}, err
		}
		accountId, err := parseId(parts[2])
		if err != nil {
			return ChatRef{}, err
		}
		return ChatRef{Type: constants.CHAT_SUPPORT, ProjectId: projectId, AccountId: accountId}, nil
	}
	return ChatRef{}, ErrInvalidChatId
}

// ChatAccess reports whether account may read and write chatId.
func ChatAccess(db *gorm.DB, account model.Account, ref ChatRef) (canRead, canWrite bool, err error) {
	builderId, err := BuilderIdForProject(db, ref.ProjectId)
	if err != nil {
		return false, false, err
	}
	caps, err := ResolveCapabilities(db, account, builderId)
	if err != nil {
		return false, false, err
	}

	if ref.Type == constants.CHAT_SUPPORT {
		allowed := ref.AccountId == account.ID || caps.IsOwner || caps.CanSupportChat
		return allowed, allowed, nil
	}

	if caps.IsOwner || caps.CanChatCommunity {
		return true, true, nil
	}
	member, err := CheckProjectAccess(db, account.ID, ref.ProjectId)
	if err != nil {
		return false, false, err
	}
	if member {
		return true, true, nil
	}
	// other managers of the builder may follow the conversation
	return caps.Any(), false, nil
}

func ListChatSessions(db *gorm.DB, account model.Account) ([]model.ChatSession, error) {
	sessions := []model.ChatSession{}
	seen := map[string]bool{}
	add := func(s model.ChatSession) {
		if !seen[s.ID] {
			seen[s.ID] = true
			sessions = append(sessions, s)
		}
	}

	type staffScope struct {
		builderId uint
		community bool
		support   bool
		subtext   string
	}
	var scopes []staffScope
	if builder, err := GetBuilderByOwner(db, account.ID); err == nil {
		scopes = append(scopes, staffScope{builder.ID, true, true, "Community Chat (Owner)"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var managers []model.Manager
	if err := db.Where("account_id = ?", account.ID).Find(&managers).Error; err != nil {
		return nil, errors.Wrap(err, "load managers")
	}
	for _, m := range managers {
		scopes = append(scopes, staffScope{m.BuilderId, m.Permissions.CanChatCommunity, m.Permissions.CanSupportChat, "Community Chat (Manager)"})
	}

	for _, scope := range scopes {
		var projects []model.Project
		if err := db.Where("builder_id = ?", scope.builderId).Order("id ASC").Find(&projects).Error; err != nil {
			return nil, errors.Wrap(err, "load builder projects")
		}
		for _, p := range projects {
			if scope.community {
				add(model.ChatSession{ID: CommunityChatId(p.ID), Type: constants.CHAT_COMMUNITY, Name: p.Name, Subtext: scope.subtext, ProjectId: p.ID})
			}
			if !scope.support {
				continue
			}
			var chats []model.SupportChat
			if err := db.Where("project_id = ?", p.ID).Order("created_at ASC").Find(&chats).Error; err != nil {
				return nil, errors.Wrap(err, "load support chats")
			}
			for _, chat := range chats {
				add(model.ChatSession{ID: chat.ID, Type: constants.CHAT_SUPPORT, Name: "Support: " + p.Name, Subtext: "Buyer Inquiry", ProjectId: p.ID})
			}
		}
	}

	var owned []model.Project
	err := db.Distinct("projects.*").
		Joins("JOIN buildings ON buildings.project_id = projects.id").
		Joins("JOIN floor_plans ON floor_plans.building_id = buildings.id").
		Joins("JOIN apartments ON apartments.floor_plan_id = floor_plans.id").
		Where("apartments.owner_id = ? AND apartments.status IN ?", account.ID, []model.ApartmentStatus{model.StatusSold, model.StatusReserved}).
		Order("projects.id ASC").
		Find(&owned).Error
	if err != nil {
		return nil, errors.Wrap(err, "load member projects")
	}
	for _, p := range owned {
		add(model.ChatSession{ID: CommunityChatId(p.ID), Type: constants.CHAT_COMMUNITY, Name: p.Name, Subtext: "Community Chat", ProjectId: p.ID})
	}

	var mine []model.SupportChat
	if err := db.Where("account_id = ?", account.ID).Order("created_at ASC").Find(&mine).Error; err != nil {
		return nil, errors.Wrap(err, "load support chats")
	}
	for _, chat := range mine {
		var project model.Project
		if err := db.Select("id", "name").First(&project, chat.ProjectId).Error; err != nil {
			continue
		}
		add(model.ChatSession{ID: chat.ID, Type: constants.CHAT_SUPPORT, Name: project.Name + " (Support)", Subtext: "Direct with Builder", ProjectId: project.ID})
	}
	return sessions, nil
}

// StartSupportChat is idempotent; the first call seeds a welcome message.
func StartSupportChat(db *gorm.DB, projectId uint, account model.Account) (string, error) {
	chatId := SupportChatId(projectId, account.ID)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Project{}, projectId).Error; err != nil {
			return err
		}
		chat := model.SupportChat{ID: chatId, ProjectId: projectId, AccountId: account.ID}
		res := tx.Where(model.SupportChat{ID: chatId}).FirstOrCreate(&chat)
		if res.Error != nil {
			return errors.Wrap(res.Error, "create support chat")
		}
		if res.RowsAffected == 0 {
			return nil
		}
		welcome := model.ChatMessage{
			ID:         uuid.NewString(),
			ChatId:     chatId,
			SenderName: "Support Bot",
			Text:       "Hello! How can we help you with this project?",
			Type:       "text",
		}
		return errors.Wrap(tx.Create(&welcome).Error, "seed support chat")
	})
	return chatId, err
}

func GetMessages(db *gorm.DB, chatId string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	q := db.Where("chat_id = ?", chatId).Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&messages).Error
	return messages, err
}

func SaveMessage(db *gorm.DB, chatId string, sender model.Account, text, imageUrl string) (*model.ChatMessage, error) {
	message := model.ChatMessage{
		ID:         uuid.NewString(),
		ChatId:     chatId,
		SenderId:   sender.ID,
		SenderName: sender.Name,
		Text:       text,
		ImageUrl:   imageUrl,
		Type:       "text",
	}
	if imageUrl != "" {
		message.Type = "image"
	}
	if err := db.Create(&message).Error; err != nil {
		return nil, errors.Wrap(err, "save message")
	}
	return &message, nil
}
