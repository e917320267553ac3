package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/sahifabooks/orderbot/internal/domain"
	"github.com/sahifabooks/orderbot/internal/ports"
)

const (
	defaultStopKeyword  = "/stop"
	defaultReceiptTitle = "SAHIFABOOKS"

	exportQueueSize = 64
)

// exportTask is one receipt queued for the export worker. A non-nil result
// channel makes the enqueuer wait for the outcome (the finalize path, which
// attaches the artifact to its reply).
type exportTask struct {
	receipt domain.Receipt
	result  chan exportResult
}

type exportResult struct {
	path string
	err  error
}

// Options tune per-deployment behavior of the intake flow.
type Options struct {
	// StopKeyword ends item entry and finalizes the order. Matched
	// case-insensitively, and only while an item name is awaited.
	StopKeyword string

	// ReceiptTitle is the brand line on top of every receipt.
	ReceiptTitle string

	// RejectNegative turns on rejection of negative prices and quantities.
	// Off by default: the parsers deliberately pass negatives through, e.g.
	// for discount lines.
	RejectNegative bool
}

// session is the per-conversation state: the explicit intake state, the
// partially entered draft and the ledger. All access goes through mu so a
// concurrent transport cannot interleave mutations to one conversation.
type session struct {
	mu     sync.Mutex
	state  domain.SessionState
	draft  domain.Draft
	ledger *domain.OrderLedger
}

// SessionService drives order-intake sessions, one per conversation. It owns
// the session registry, validates every inbound message against the current
// state and commits a line item only when the full (name, price, quantity)
// triple has validated.
type SessionService struct {
	mu       sync.Mutex
	sessions map[domain.ConversationID]*session

	sink     ports.ExportSink
	archive  ports.OrderArchive
	renderer ports.ReceiptRenderer
	clock    ports.Clock
	logger   *log.Logger
	opts     Options

	// exportQueue is drained by exactly one worker goroutine so receipts
	// reach the sink in dispatch order and never overlap on the shared
	// artifact.
	exportQueue chan exportTask
	exportDone  chan struct{}
	closeOnce   sync.Once
}

func NewSessionService(sink ports.ExportSink, archive ports.OrderArchive, renderer ports.ReceiptRenderer, clock ports.Clock, logger *log.Logger, opts Options) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if opts.StopKeyword == "" {
		opts.StopKeyword = defaultStopKeyword
	}
	if opts.ReceiptTitle == "" {
		opts.ReceiptTitle = defaultReceiptTitle
	}

	s := &SessionService{
		sessions:    make(map[domain.ConversationID]*session),
		sink:        sink,
		archive:     archive,
		renderer:    renderer,
		clock:       clock,
		logger:      logger,
		opts:        opts,
		exportQueue: make(chan exportTask, exportQueueSize),
		exportDone:  make(chan struct{}),
	}
	go s.exportWorker()

	return s
}

// Begin starts a fresh session for the conversation, discarding any state a
// previous session left behind.
func (s *SessionService) Begin(ctx context.Context, id domain.ConversationID) (OutboundMessage, error) {
	if err := ctx.Err(); err != nil {
		return OutboundMessage{}, err
	}

	sess := s.sessionFor(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state = domain.StateAwaitingBuyer
	sess.draft.Reset()
	sess.ledger = nil

	return OutboundMessage{Text: "Welcome! Please enter the buyer name:"}, nil
}

// Handle applies one inbound chat message to the conversation's session. A
// session is created on the first message if Begin was never called. Invalid
// input is always recovered locally: the reply carries a corrective prompt and
// neither the state nor the ledger changes.
func (s *SessionService) Handle(ctx context.Context, id domain.ConversationID, text string) (OutboundMessage, error) {
	if err := ctx.Err(); err != nil {
		return OutboundMessage{}, err
	}

	sess := s.sessionFor(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.state {
	case domain.StateAwaitingBuyer, domain.StateIdle:
		return s.acceptBuyer(sess, text), nil
	case domain.StateAwaitingItemName:
		if strings.EqualFold(text, s.opts.StopKeyword) {
			return s.finalizeLocked(ctx, id, sess)
		}
		return s.acceptItemName(sess, text), nil
	case domain.StateAwaitingPrice:
		return s.acceptPrice(sess, text), nil
	case domain.StateAwaitingQuantity:
		return s.acceptQuantity(sess, text), nil
	default:
		return OutboundMessage{}, fmt.Errorf("conversation %s: unknown session state %v", id, sess.state)
	}
}

// Finalize ends the conversation's session explicitly, equivalent to sending
// the stop keyword while an item name is awaited.
func (s *SessionService) Finalize(ctx context.Context, id domain.ConversationID) (OutboundMessage, error) {
	if err := ctx.Err(); err != nil {
		return OutboundMessage{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return OutboundMessage{Text: "No data entered."}, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.finalizeLocked(ctx, id, sess)
}

// Active reports whether the conversation currently has a live session.
func (s *SessionService) Active(id domain.ConversationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// State returns the conversation's current intake state.
func (s *SessionService) State(id domain.ConversationID) (domain.SessionState, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return domain.StateAwaitingBuyer, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state, true
}

// Close stops accepting export tasks and drains the queue.
func (s *SessionService) Close() {
	s.closeOnce.Do(func() {
		close(s.exportQueue)
	})
	<-s.exportDone
}

func (s *SessionService) sessionFor(id domain.ConversationID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{state: domain.StateAwaitingBuyer}
		s.sessions[id] = sess
	}
	return sess
}

func (s *SessionService) dispose(id domain.ConversationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionService) acceptBuyer(sess *session, text string) OutboundMessage {
	sess.ledger = domain.NewOrderLedger(text)
	sess.state = domain.StateAwaitingItemName

	return OutboundMessage{
		Text: fmt.Sprintf("Buyer saved: %s. Enter an item name (or %s to finish):", text, s.opts.StopKeyword),
	}
}

func (s *SessionService) acceptItemName(sess *session, text string) OutboundMessage {
	sess.draft.Name = text
	sess.state = domain.StateAwaitingPrice

	return OutboundMessage{Text: fmt.Sprintf("Enter the price for %s:", text)}
}

func (s *SessionService) acceptPrice(sess *session, text string) OutboundMessage {
	price, err := domain.NormalizePrice(text)
	if err != nil {
		return OutboundMessage{Text: "Invalid price. Please enter a valid number."}
	}
	if s.opts.RejectNegative && price < 0 {
		return OutboundMessage{Text: "Invalid price. Negative prices are not accepted."}
	}

	sess.draft.Price = price
	sess.state = domain.StateAwaitingQuantity

	return OutboundMessage{Text: "Enter the quantity:"}
}

func (s *SessionService) acceptQuantity(sess *session, text string) OutboundMessage {
	quantity, err := domain.ParseQuantity(text)
	if err != nil {
		return OutboundMessage{Text: "Invalid quantity. Please enter a numeric value."}
	}
	if s.opts.RejectNegative && quantity < 0 {
		return OutboundMessage{Text: "Invalid quantity. Negative quantities are not accepted."}
	}

	sess.ledger.Append(domain.LineItem{
		Name:      sess.draft.Name,
		UnitPrice: sess.draft.Price,
		Quantity:  quantity,
	})
	sess.draft.Reset()
	sess.state = domain.StateAwaitingItemName

	receipt := domain.BuildReceipt(sess.ledger.Snapshot(), s.opts.ReceiptTitle, s.clock.Now())
	s.dispatchExport(receipt)

	return OutboundMessage{
		Text: fmt.Sprintf("Item saved.\n\n%s\n\nEnter another item name (or %s to finish):",
			s.renderReceipt(receipt), s.opts.StopKeyword),
		Formatting: FormattingRich,
	}
}

// finalizeLocked ends the session: render the final receipt, archive and
// export it, then clear the ledger and dispose the session. An empty ledger
// only produces a warning and changes nothing.
func (s *SessionService) finalizeLocked(ctx context.Context, id domain.ConversationID, sess *session) (OutboundMessage, error) {
	if sess.ledger == nil || sess.ledger.IsEmpty() {
		return OutboundMessage{Text: "No data entered."}, nil
	}

	snapshot := sess.ledger.Snapshot()
	now := s.clock.Now()
	receipt := domain.BuildReceipt(snapshot, s.opts.ReceiptTitle, now)

	if s.archive != nil {
		order := domain.ArchivedOrder{
			Buyer:       snapshot.Buyer,
			Items:       snapshot.Items,
			GrandTotal:  snapshot.GrandTotal,
			FinalizedAt: now,
		}
		if err := s.archive.Save(ctx, order); err != nil {
			s.logger.Error("archive order", "buyer", snapshot.Buyer, "err", err)
		}
	}

	// The final export rides the same queue as the per-append ones, behind
	// any still-pending receipts, so the artifact on disk always ends up
	// reflecting the newest state.
	var attachment *Attachment
	if s.sink != nil {
		result := make(chan exportResult, 1)
		s.exportQueue <- exportTask{receipt: receipt, result: result}
		res := <-result
		if res.err != nil {
			s.logger.Error("export final receipt", "buyer", snapshot.Buyer, "err", res.err)
		} else {
			attachment = &Attachment{Kind: AttachmentTabular, Path: res.path}
		}
	}

	sess.ledger.Clear()
	sess.draft.Reset()
	sess.state = domain.StateAwaitingBuyer
	s.dispose(id)

	return OutboundMessage{
		Text:       fmt.Sprintf("Final receipt:\n\n%s", s.renderReceipt(receipt)),
		Formatting: FormattingRich,
		Attachment: attachment,
	}, nil
}

// dispatchExport persists the running receipt off the message-handling path.
// The reply never waits on the sink; failures are logged and the in-memory
// ledger stays authoritative.
func (s *SessionService) dispatchExport(receipt domain.Receipt) {
	if s.sink == nil {
		return
	}

	s.exportQueue <- exportTask{receipt: receipt}
}

// exportWorker is the single consumer of exportQueue. One worker means
// receipts hit the sink strictly in dispatch order; a newer receipt can never
// be overwritten by a slower, older export.
func (s *SessionService) exportWorker() {
	defer close(s.exportDone)

	for task := range s.exportQueue {
		path, err := s.sink.Export(context.Background(), task.receipt)
		if task.result != nil {
			task.result <- exportResult{path: path, err: err}
			continue
		}
		if err != nil {
			s.logger.Error("export receipt", "buyer", task.receipt.Header.Buyer, "err", err)
		}
	}
}

func (s *SessionService) renderReceipt(receipt domain.Receipt) string {
	if s.renderer != nil {
		rendered, err := s.renderer.Render(receipt)
		if err == nil {
			return rendered
		}
		s.logger.Error("render receipt", "buyer", receipt.Header.Buyer, "err", err)
	}

	return plainReceipt(receipt)
}

// plainReceipt is the renderer-less fallback: tab-separated rows with the
// same header block and total row as the styled table.
func plainReceipt(receipt domain.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nBuyer: %s\n\n", receipt.Header.Title, receipt.Header.Buyer)
	fmt.Fprintf(&b, "%s\n", strings.Join(domain.ReceiptColumns, "\t"))
	for _, row := range receipt.Rows {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", row.Name, row.Price, row.Quantity, row.Subtotal)
	}
	fmt.Fprintf(&b, "%s\t\t\t%s\n\n%s", domain.TotalRowLabel, receipt.TotalDisplay, receipt.Header.Timestamp)
	return b.String()
}
