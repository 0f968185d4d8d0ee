// Package writer materializes a validated record into the graph store in
// dependency order: project, meeting, then the meeting's children.
package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/siherrmann/meetinggraph/core/identity"
	"github.com/siherrmann/meetinggraph/core/schema"
	"github.com/siherrmann/meetinggraph/model"
)

// ErrWrite is returned when the store is unreachable or a write call fails.
// Writes committed before the failure are kept.
var ErrWrite = errors.New("write error")

// Writer writes records through a Store.
type Writer struct {
	store Store
	log   *slog.Logger
}

// New creates a Writer. A nil logger falls back to slog.Default.
func New(store Store, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		store: store,
		log:   logger,
	}
}

// Write upserts the project of record and all of its meetings with their
// committee, topics, documents and statements. Entities missing a required
// field are skipped and counted in the summary. The first store error aborts
// the rest of the record; the partial summary is returned alongside it.
func (w *Writer) Write(ctx context.Context, record *model.Record) (*model.WriteSummary, error) {
	if record == nil || strings.TrimSpace(record.Project.Name) == "" {
		return nil, fmt.Errorf("%w: missing project/name", schema.ErrSchema)
	}

	session, err := w.store.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open session: %w", ErrWrite, err)
	}
	defer func() {
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			w.log.Warn("Closing graph session failed", slog.String("error", err.Error()))
		}
	}()

	summary := model.NewWriteSummary()

	projectID, ok, err := w.upsert(ctx, session, model.LabelProject, record.Project.Attributes(), summary)
	if err != nil {
		return summary, err
	}
	if !ok {
		return summary, fmt.Errorf("%w: missing project/name", schema.ErrSchema)
	}

	for _, meeting := range record.Meetings {
		if err := w.writeMeeting(ctx, session, projectID, meeting, summary); err != nil {
			return summary, err
		}
	}

	w.log.Info("Wrote record to graph",
		slog.String("project", record.Project.Name),
		slog.Int("nodes", summary.TotalNodes()),
		slog.Int("edges", summary.TotalEdges()),
		slog.Int("skipped", summary.TotalSkipped()),
	)

	return summary, nil
}

func (w *Writer) writeMeeting(ctx context.Context, session Session, projectID uuid.UUID, meeting model.Meeting, summary *model.WriteSummary) error {
	meetingID, ok, err := w.upsert(ctx, session, model.LabelMeeting, meeting.Attributes(), summary)
	if err != nil {
		return err
	}
	if !ok {
		w.log.Debug("Skipped meeting without title or date", slog.String("title", meeting.Title), slog.String("date", meeting.Date))
		return nil
	}
	if err := w.link(ctx, session, projectID, meetingID, model.RelHasMeeting, summary); err != nil {
		return err
	}

	if meeting.Committee != nil {
		if err := w.child(ctx, session, meetingID, model.LabelCommittee, model.RelHeldBy, meeting.Committee.Attributes(), summary); err != nil {
			return err
		}
	}
	for _, topic := range meeting.Topics {
		if err := w.child(ctx, session, meetingID, model.LabelTopic, model.RelDiscussed, topic.Attributes(), summary); err != nil {
			return err
		}
	}
	for _, document := range meeting.Documents {
		if err := w.child(ctx, session, meetingID, model.LabelDocument, model.RelHasDocument, document.Attributes(), summary); err != nil {
			return err
		}
	}
	for _, statement := range meeting.Statements {
		if err := w.statement(ctx, session, meetingID, statement, summary); err != nil {
			return err
		}
	}

	return nil
}

// child upserts a keyed sub-entity of a meeting and links it.
func (w *Writer) child(ctx context.Context, session Session, meetingID uuid.UUID, label model.Label, rel model.RelType, attrs model.Properties, summary *model.WriteSummary) error {
	id, ok, err := w.upsert(ctx, session, label, attrs, summary)
	if err != nil || !ok {
		return err
	}
	return w.link(ctx, session, meetingID, id, rel, summary)
}

// statement creates a new statement node; statements are never matched.
func (w *Writer) statement(ctx context.Context, session Session, meetingID uuid.UUID, statement model.Statement, summary *model.WriteSummary) error {
	if statement.Text == nil || strings.TrimSpace(*statement.Text) == "" {
		summary.AddSkip(model.LabelStatement)
		return nil
	}

	id, err := session.CreateNode(ctx, model.LabelStatement, statement.Attributes())
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWrite, model.LabelStatement, err)
	}
	summary.AddNode(model.LabelStatement)

	return w.link(ctx, session, meetingID, id, model.RelRecordedStatement, summary)
}

// upsert merges a node by its identity key. ok is false when the key is
// incomplete and the entity was skipped without touching the store.
func (w *Writer) upsert(ctx context.Context, session Session, label model.Label, attrs model.Properties, summary *model.WriteSummary) (uuid.UUID, bool, error) {
	key, props := identity.SplitAttributes(label, attrs)
	if !key.Complete() {
		summary.AddSkip(label)
		return uuid.Nil, false, nil
	}

	id, err := session.MergeNode(ctx, label, key.Properties(), props)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: merge %s: %w", ErrWrite, key, err)
	}
	summary.AddNode(label)

	return id, true, nil
}

func (w *Writer) link(ctx context.Context, session Session, from, to uuid.UUID, rel model.RelType, summary *model.WriteSummary) error {
	if err := session.MergeEdge(ctx, from, to, rel); err != nil {
		return fmt.Errorf("%w: merge %s edge %s -> %s: %w", ErrWrite, rel, from, to, err)
	}
	summary.AddEdge(rel)
	return nil
}
