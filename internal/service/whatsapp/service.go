package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/config"
	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/service/reporting"
)

const replyTimeout = 90 * time.Second

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
}

// DraftSource yields the operator's current draft.
type DraftSource interface {
	DraftDashboard(months int) models.Dashboard
	DraftWithDashboard(months int) (models.BusinessConfiguration, models.Dashboard)
}

// Comparer ranks saved scenarios against the draft.
type Comparer interface {
	Compare(ctx context.Context, draft *models.BusinessConfiguration) (models.Comparison, error)
}

// Reporter renders digests and narrative reports.
type Reporter interface {
	BuildDigest(dashboard models.Dashboard, comparison models.Comparison) string
	GenerateStrategy(ctx context.Context, cfg models.BusinessConfiguration, dashboard models.Dashboard) (models.StrategyReport, error)
}

// Sender delivers a text reply.
type Sender interface {
	SendText(ctx context.Context, to, body string) ([]string, error)
}

// MetaWhatsAppService answers operator queries received through the WhatsApp Cloud API webhook.
type MetaWhatsAppService struct {
	cfg      config.WhatsAppConfig
	draft    DraftSource
	comparer Comparer
	reporter Reporter
	sender   Sender
	logger   *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, draft DraftSource, comparer Comparer, reporter Reporter, sender Sender, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{
		cfg:      cfg,
		draft:    draft,
		comparer: comparer,
		reporter: reporter,
		sender:   sender,
		logger:   logger.Named("svc.whatsapp"),
	}
}

const helpText = `사용 가능한 명령
/요약 [개월] - 현재 계획 요약
/비교 - 저장된 시나리오 비교
/리포트 - AI 전략 리포트
/도움말 - 이 안내`

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads. Messages from anyone but
// the configured operator are ignored.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, msg := range payload.InboundMessages() {
		if msg.From != s.cfg.DigestRecipient {
			s.logger.Warn("ignoring message from unknown sender", zap.String("from", msg.From))
			continue
		}
		if err := s.handleInboundMessage(ctx, msg); err != nil {
			s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	text := msg.CommandText()
	if text == "" {
		return errors.New("empty message body")
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	reply, err := s.reply(ctx, cmd)
	if err != nil {
		return fmt.Errorf("answer %s: %w", cmd.Type, err)
	}

	if _, err := s.sender.SendText(ctx, msg.From, reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func (s *MetaWhatsAppService) reply(ctx context.Context, cmd models.Command) (string, error) {
	switch cmd.Type {
	case models.CommandSummary:
		months := -1
		if len(cmd.Args) > 0 {
			if n, err := strconv.Atoi(cmd.Args[0]); err == nil && n >= 0 && n <= 120 {
				months = n
			}
		}
		return s.reporter.BuildDigest(s.draft.DraftDashboard(months), models.Comparison{}), nil

	case models.CommandCompare:
		draft, dashboard := s.draft.DraftWithDashboard(-1)
		cmp, err := s.comparer.Compare(ctx, &draft)
		if err != nil {
			return "", err
		}
		return s.reporter.BuildDigest(dashboard, cmp), nil

	case models.CommandReport:
		draft, dashboard := s.draft.DraftWithDashboard(-1)
		report, err := s.reporter.GenerateStrategy(ctx, draft, dashboard)
		if errors.Is(err, reporting.ErrNarratorUnavailable) {
			return "AI 리포트가 설정되지 않았습니다.", nil
		}
		if err != nil {
			return "", err
		}
		return report.Content, nil

	default:
		return helpText, nil
	}
}
