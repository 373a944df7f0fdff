package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/engine"
	"github.com/terrazza/bizplanner/internal/metrics"
	repo "github.com/terrazza/bizplanner/internal/repository/sheets"
)

const dateLayout = "2006-01-02 15:04"

var (
	projectionRange = repo.ColumnRange("Projection", len(projectionHeader))
	comparisonRange = repo.ColumnRange("Comparison", len(comparisonHeader))
	historyRange    = repo.ColumnRange("History", 7)
)

var projectionHeader = []interface{}{
	"월", "카페 매출", "공간대여 매출", "와인바 매출", "카페 원가", "와인 원가",
	"인건비", "공과금", "기타 고정비", "총 매출", "총 원가", "매출총이익", "고정비", "순이익", "누적 손익",
}

var comparisonHeader = []interface{}{"시나리오", "ID", "초안", "총 매출", "순이익", "초기 투자", "순이익률(%)", "회수 기간"}

var (
	// ErrNarratorUnavailable is returned when no text generator is configured.
	ErrNarratorUnavailable = errors.New("report narrator is not configured")
	// ErrSheetsUnavailable is returned when the spreadsheet export is not configured.
	ErrSheetsUnavailable = errors.New("spreadsheet export is not configured")
	// ErrNotifierUnavailable is returned when no digest channel is configured.
	ErrNotifierUnavailable = errors.New("digest notifier is not configured")
)

// Narrator turns a prompt into narrative text.
type Narrator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers a plain-text digest to a recipient.
type Notifier interface {
	SendText(ctx context.Context, to, body string) ([]string, error)
}

// Service produces strategy reports, spreadsheet exports and text digests.
// Every collaborator is optional; missing ones surface as sentinel errors.
type Service struct {
	narrator  Narrator
	sheets    repo.Repository
	notifier  Notifier
	recipient string
	metrics   *metrics.Recorder
	logger    *zap.Logger
	now       func() time.Time
	location  *time.Location
}

// Options carries the optional collaborators of the reporting service.
type Options struct {
	Narrator  Narrator
	Sheets    repo.Repository
	Notifier  Notifier
	Recipient string
	Location  *time.Location
	Metrics   *metrics.Recorder
}

// NewService wires a new reporting service instance.
func NewService(opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		narrator:  opts.Narrator,
		sheets:    opts.Sheets,
		notifier:  opts.Notifier,
		recipient: opts.Recipient,
		metrics:   opts.Metrics,
		logger:    logger.Named("svc.reporting"),
		now:       time.Now,
		location:  loc,
	}
}

// NarratorEnabled reports whether GenerateStrategy can succeed.
func (s *Service) NarratorEnabled() bool { return s.narrator != nil }

// ExportEnabled reports whether ExportProjection can succeed.
func (s *Service) ExportEnabled() bool { return s.sheets != nil }

// DigestEnabled reports whether SendDigest can succeed.
func (s *Service) DigestEnabled() bool { return s.notifier != nil && s.recipient != "" }

// GenerateStrategy asks the narrator for a Korean strategy report on cfg.
func (s *Service) GenerateStrategy(ctx context.Context, cfg models.BusinessConfiguration, dashboard models.Dashboard) (models.StrategyReport, error) {
	if s.narrator == nil {
		return models.StrategyReport{}, ErrNarratorUnavailable
	}

	snapshot := engine.Snapshot(cfg, dashboard.Summary, dashboard.BreakEven)
	prompt := BuildPrompt(cfg, snapshot)

	started := s.now()
	content, err := s.narrator.Generate(ctx, prompt)
	s.metrics.Report(err)
	if err != nil {
		s.logger.Warn("strategy generation failed", zap.String("provider", s.narrator.Name()), zap.Error(err))
		return models.StrategyReport{}, fmt.Errorf("generate strategy report: %w", err)
	}

	s.logger.Info("strategy report generated",
		zap.String("provider", s.narrator.Name()),
		zap.Int("chars", len(content)),
		zap.Duration("elapsed", s.now().Sub(started)),
	)

	return models.StrategyReport{
		Content:     content,
		Provider:    s.narrator.Name(),
		Snapshot:    snapshot,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// BuildPrompt renders the consultant prompt for a snapshot.
func BuildPrompt(cfg models.BusinessConfiguration, snap models.ReportSnapshot) string {
	var b strings.Builder
	b.WriteString("당신은 카페, 공간대여, 와인바 3가지 사업이 결합된 복합 문화 공간의 전문 비즈니스 컨설턴트입니다.\n")
	b.WriteString("현재 사업 계획을 분석하고 전략적인 조언을 제공해주세요.\n\n")
	b.WriteString("현재 설정 데이터:\n")
	fmt.Fprintf(&b, "- 카페: 좌석 %s개, 일 영업 %s시간, 회전율 %s%%, 테이크아웃 %s%%\n",
		humanize.Ftoa(snap.SeatCount), humanize.Ftoa(snap.OperatingHours),
		humanize.Ftoa(snap.TurnoverPercent), humanize.Ftoa(snap.TakeoutPercent))
	fmt.Fprintf(&b, "- 공간대여: 시간당 %s원, 가동률 %s%%\n",
		humanize.Comma(engine.RoundWon(cfg.Space.HourlyRate)), humanize.Ftoa(snap.UtilizationPct))
	fmt.Fprintf(&b, "- 와인바: 객단가 %s원, 일 %s팀, 원가율 %s%%\n",
		humanize.Comma(engine.RoundWon(cfg.Wine.AvgTicketPrice)), humanize.Ftoa(snap.WineTables), humanize.Ftoa(snap.WineCOGSPercent))
	fmt.Fprintf(&b, "- 재무 요약: 월 매출 ₩%s, 월 순이익 ₩%s, 순이익률 %s%%, 초기 투자 ₩%s, BEP %s\n\n",
		humanize.Comma(snap.TotalRevenue), humanize.Comma(snap.NetProfit),
		humanize.Ftoa(snap.MarginPercent), humanize.Comma(snap.TotalInvestment), snap.BreakEven)
	b.WriteString("다음 항목을 포함하여 전문적이고 구체적인 비즈니스 리포트를 작성해주세요:\n")
	b.WriteString("1. SWOT 분석 (강점, 약점, 기회, 위협)\n")
	b.WriteString("2. 3-in-1 복합 모델의 시너지 극대화 전략\n")
	b.WriteString("3. 수익성 개선을 위한 핵심 액션 플랜\n")
	b.WriteString("4. 프리미엄 브랜딩 제언\n\n")
	b.WriteString("형식: 읽기 쉬운 마크다운(Markdown) 스타일로 한국어로 작성하세요.\n")
	return b.String()
}

// ExportProjection writes the projection and comparison tables and appends a
// history line to the spreadsheet.
func (s *Service) ExportProjection(ctx context.Context, dashboard models.Dashboard, comparison models.Comparison) error {
	if s.sheets == nil {
		return ErrSheetsUnavailable
	}

	if err := s.sheets.ReplaceRange(ctx, projectionRange, projectionRows(dashboard.Projection)); err != nil {
		return fmt.Errorf("export projection: %w", err)
	}
	if err := s.sheets.ReplaceRange(ctx, comparisonRange, comparisonRows(comparison.Rows)); err != nil {
		return fmt.Errorf("export comparison: %w", err)
	}

	sum := dashboard.Summary
	history := []interface{}{
		s.now().In(s.location).Format(dateLayout),
		engine.RoundWon(sum.TotalRevenue),
		engine.RoundWon(sum.TotalCOGS),
		engine.RoundWon(sum.TotalFixedCosts),
		engine.RoundWon(sum.NetProfit),
		engine.RoundWon(sum.TotalInvestment),
		dashboard.BreakLabel,
	}
	if err := s.sheets.AppendRow(ctx, historyRange, history); err != nil {
		return fmt.Errorf("append export history: %w", err)
	}

	s.logger.Info("projection exported",
		zap.Int("months", len(dashboard.Projection)),
		zap.Int("scenarios", len(comparison.Rows)),
	)
	return nil
}

func projectionRows(records []models.MonthlyFinancialRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, projectionHeader)
	for _, r := range records {
		rows = append(rows, []interface{}{
			fmt.Sprintf("M+%d", r.Month),
			engine.RoundWon(r.CafeRevenue), engine.RoundWon(r.SpaceRevenue), engine.RoundWon(r.WineRevenue),
			engine.RoundWon(r.CafeCOGS), engine.RoundWon(r.WineCOGS),
			engine.RoundWon(r.LaborCost), engine.RoundWon(r.UtilityCost), engine.RoundWon(r.OtherFixedCost),
			engine.RoundWon(r.Revenue), engine.RoundWon(r.COGS), engine.RoundWon(r.GrossProfit), engine.RoundWon(r.FixedCosts),
			engine.RoundWon(r.NetProfit), engine.RoundWon(r.CumulativeProfit),
		})
	}
	return rows
}

func comparisonRows(rows []models.ComparisonRow) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	out = append(out, comparisonHeader)
	for _, r := range rows {
		out = append(out, []interface{}{
			r.Name, r.ScenarioID, r.IsDraft,
			engine.RoundWon(r.TotalRevenue), engine.RoundWon(r.NetProfit), engine.RoundWon(r.TotalInvestment),
			engine.Percent(r.Margin), paybackLabel(r.PaybackMonths),
		})
	}
	return out
}

// BuildDigest renders a short plain-text summary of the draft and the saved scenarios.
func (s *Service) BuildDigest(dashboard models.Dashboard, comparison models.Comparison) string {
	sum := dashboard.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "[사업 계획 요약] %s\n", s.now().In(s.location).Format(dateLayout))
	fmt.Fprintf(&b, "월 매출 ₩%s / 순이익 ₩%s (순이익률 %s%%)\n",
		humanize.Comma(engine.RoundWon(sum.TotalRevenue)), humanize.Comma(engine.RoundWon(sum.NetProfit)),
		humanize.Ftoa(engine.Percent(engine.Margin(sum.NetProfit, sum.TotalRevenue))))
	fmt.Fprintf(&b, "초기 투자 ₩%s, BEP %s\n", humanize.Comma(engine.RoundWon(sum.TotalInvestment)), dashboard.BreakLabel)
	fmt.Fprintf(&b, "카페 일 판매 %d잔 (최대 %d잔)\n", sum.DailySalesCount, sum.MaxDailyCapacity)

	for _, w := range dashboard.Warnings {
		fmt.Fprintf(&b, "주의: %s\n", w)
	}

	if len(comparison.Rows) > 0 {
		b.WriteString("\n시나리오 비교\n")
		for _, r := range comparison.Rows {
			fmt.Fprintf(&b, "- %s: 순이익 ₩%s, 회수 %s\n", r.Name, humanize.Comma(engine.RoundWon(r.NetProfit)), paybackLabel(r.PaybackMonths))
		}
		if best := comparison.BestProfit; best != nil {
			fmt.Fprintf(&b, "최고 순이익: %s\n", best.Name)
		}
		if fastest := comparison.FastestPayback; fastest != nil {
			fmt.Fprintf(&b, "최단 회수: %s (%s)\n", fastest.Name, paybackLabel(fastest.PaybackMonths))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// SendDigest delivers text to the configured recipient.
func (s *Service) SendDigest(ctx context.Context, text string) error {
	if !s.DigestEnabled() {
		return ErrNotifierUnavailable
	}
	ids, err := s.notifier.SendText(ctx, s.recipient, text)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	s.logger.Info("digest sent", zap.Strings("message_ids", ids))
	return nil
}

func paybackLabel(p models.Payback) string {
	if !p.Reached {
		return models.UnreachedLabel
	}
	return fmt.Sprintf("%d개월", p.Months)
}
