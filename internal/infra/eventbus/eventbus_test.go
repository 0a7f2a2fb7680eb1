package eventbus

import (
	"context"
	"testing"
	"time"

	"go-attribution/internal/tracking"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/suite"
)

type EventBusTestSuite struct {
	suite.Suite
	sut    *EventBus
	logger watermill.LoggerAdapter
}

func TestEventBusTestSuite(t *testing.T) {
	suite.Run(t, new(EventBusTestSuite))
}

func (s *EventBusTestSuite) SetupTest() {
	s.logger = watermill.NopLogger{}
	s.sut = NewEventBus(s.logger)
}

func (s *EventBusTestSuite) TearDownTest() {
	if s.sut != nil {
		s.sut.Close()
	}
}

func (s *EventBusTestSuite) TestPublish_WithoutSubscribers() {
	// Arrange
	evt := tracking.NewEvent("cta_click", "conversion", tracking.WithLabel("book_home"))

	// Act
	err := s.sut.Publish(context.Background(), evt)

	// Assert
	s.NoError(err)
}

func (s *EventBusTestSuite) TestPublish_CanceledContextStillDelivers() {
	// Arrange
	subCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	messages, err := s.sut.Subscriber().Subscribe(subCtx, EventsTopic)
	s.Require().NoError(err)
	pubCtx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err = s.sut.Publish(pubCtx, tracking.NewEvent("cta_click", "conversion"))

	// Assert
	s.Require().NoError(err)
	select {
	case msg := <-messages:
		s.Equal("cta_click", msg.Metadata.Get("action"))
		s.NoError(msg.Context().Err())
		msg.Ack()
	case <-time.After(time.Second):
		s.Fail("message was not delivered")
	}
}

func (s *EventBusTestSuite) TestEventToMessage() {
	// Arrange
	evt := tracking.NewEvent("view_project", "engagement", tracking.WithLabel("7_shop"))
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Act
	msg, err := EventToMessage(evt, at)

	// Assert
	s.Require().NoError(err)
	s.NotEmpty(msg.UUID)
	s.Equal("view_project", msg.Metadata.Get("action"))
	s.Equal("engagement", msg.Metadata.Get("category"))
}

func (s *EventBusTestSuite) TestMessageToEnvelope() {
	// Arrange
	evt := tracking.NewEvent("purchase", "conversion", tracking.WithValue(12))
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg, err := EventToMessage(evt, at)
	s.Require().NoError(err)

	// Act
	envelope, err := MessageToEnvelope(msg)

	// Assert
	s.Require().NoError(err)
	s.Equal(msg.UUID, envelope.EventID)
	s.Equal("purchase", envelope.Action)
	s.True(at.Equal(envelope.OccurredAt))

	decoded, err := envelope.Event()
	s.Require().NoError(err)
	s.Equal(evt, decoded)
}

func (s *EventBusTestSuite) TestPublishAndSubscribe() {
	// Arrange
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := s.sut.Subscriber().Subscribe(ctx, EventsTopic)
	s.Require().NoError(err)
	evt := tracking.NewEvent("calendly_booking", "conversion", tracking.WithLabel("discovery_call"))

	// Act
	err = s.sut.Publish(ctx, evt)
	s.Require().NoError(err)

	// Assert
	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		s.NoError(err)
		s.Equal("calendly_booking", envelope.Action)
		s.Equal("conversion", envelope.Category)
		msg.Ack()
	case <-ctx.Done():
		s.Fail("timeout waiting for message")
	}
}

func (s *EventBusTestSuite) TestBackend_PageView_PublishesPageViewEvent() {
	// Arrange
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := s.sut.Subscriber().Subscribe(ctx, EventsTopic)
	s.Require().NoError(err)
	backend, err := NewLoader(s.sut).Load(ctx)
	s.Require().NoError(err)

	// Act
	err = backend.RecordPageView(ctx, "/services/web")
	s.Require().NoError(err)

	// Assert
	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		s.Require().NoError(err)
		s.Equal(PageViewAction, envelope.Action)
		evt, err := envelope.Event()
		s.Require().NoError(err)
		label, _ := evt.Label()
		s.Equal("/services/web", label)
		msg.Ack()
	case <-ctx.Done():
		s.Fail("timeout waiting for message")
	}
}
