package notifier

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	pageevents "mealremind/internal/implementations/page_events"
	"net/url"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNotification = notification.Notification{
	Title: "Time for Lunch",
	Body:  "It's 13:00. Time for your lunch.",
	Tag:   "r-1",
}

func TestInPagePublishesNotification(t *testing.T) {
	// Setup ---
	publisher := pageevents.NewFakePublisher()
	d := NewInPage(publisher)

	// Exercise ---
	err := d.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, pageevents.KIND_NOTIFICATION, events[0].Kind)
	assert.Equal(t, testNotification, events[0].Payload)
}

func TestPermissionGateGrantedDisplays(t *testing.T) {
	// Setup ---
	next := notification.NewFakeDisplayer()
	publisher := pageevents.NewFakePublisher()
	gate := NewPermissionGate(logging.NewFakeLogger(), next, publisher, notification.PermissionGranted)

	// Exercise ---
	err := gate.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	assert.Equal(t, []notification.Notification{testNotification}, next.Shown())
	assert.Empty(t, publisher.Kinds())
}

func TestPermissionGateDefaultRequestsOnce(t *testing.T) {
	// Setup ---
	ctx := context.Background()
	next := notification.NewFakeDisplayer()
	publisher := pageevents.NewFakePublisher()
	gate := NewPermissionGate(logging.NewFakeLogger(), next, publisher, notification.PermissionDefault)

	// Exercise ---
	require.Nil(t, gate.Display(ctx, testNotification))
	require.Nil(t, gate.Display(ctx, testNotification))

	// Verify ---
	assert.Equal(t, 0, next.Calls())
	assert.Equal(t, []string{pageevents.KIND_PERMISSION_REQUEST}, publisher.Kinds())
}

func TestPermissionGateDeniedIsSilent(t *testing.T) {
	// Setup ---
	next := notification.NewFakeDisplayer()
	publisher := pageevents.NewFakePublisher()
	gate := NewPermissionGate(logging.NewFakeLogger(), next, publisher, notification.PermissionDenied)

	// Exercise ---
	err := gate.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	assert.Equal(t, 0, next.Calls())
	assert.Empty(t, publisher.Kinds())
}

func TestPermissionGateRequestsAgainAfterStateChange(t *testing.T) {
	// Setup ---
	ctx := context.Background()
	publisher := pageevents.NewFakePublisher()
	gate := NewPermissionGate(
		logging.NewFakeLogger(), notification.NewFakeDisplayer(), publisher, notification.Permission{},
	)
	gate.RequestPermission(ctx)

	// Exercise ---
	gate.SetPermission(ctx, notification.PermissionDenied)
	gate.SetPermission(ctx, notification.PermissionDefault)
	gate.RequestPermission(ctx)

	// Verify ---
	assert.Equal(
		t,
		[]string{pageevents.KIND_PERMISSION_REQUEST, pageevents.KIND_PERMISSION_REQUEST},
		publisher.Kinds(),
	)
	assert.Equal(t, notification.PermissionDefault, gate.Permission(ctx))
}

type fakeTelegramBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (b *fakeTelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.err != nil {
		return tgbotapi.Message{}, b.err
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func TestTelegramSendsMessageWithLink(t *testing.T) {
	// Setup ---
	bot := &fakeTelegramBot{}
	appURL, _ := url.Parse("https://meals.example.com/")
	d := NewTelegram(bot, 42, *appURL)

	// Exercise ---
	err := d.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	require.Len(t, bot.sent, 1)
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "<b>Time for Lunch</b>\nIt's 13:00. Time for your lunch.", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.NotNil(t, markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://meals.example.com/", *markup.InlineKeyboard[0][0].URL)
}

type fakeSESClient struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (c *fakeSESClient) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	c.inputs = append(c.inputs, params)
	return &ses.SendEmailOutput{}, c.err
}

func TestEmailSendsSimpleMessage(t *testing.T) {
	// Setup ---
	client := &fakeSESClient{}
	d := NewEmail(client, "noreply@example.com", "me@example.com", url.URL{})

	// Exercise ---
	err := d.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	require.Len(t, client.inputs, 1)
	input := client.inputs[0]
	assert.Equal(t, "noreply@example.com", *input.Source)
	assert.Equal(t, []string{"me@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Time for Lunch", *input.Message.Subject.Data)
	assert.Equal(t, testNotification.Body, *input.Message.Body.Text.Data)
}

func TestCompositeSucceedsIfAnyChannelSucceeds(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	failing := notification.NewFakeDisplayer()
	failing.Errors = []error{errors.New("boom")}
	working := notification.NewFakeDisplayer()
	d := NewComposite(log, Channel{Name: "telegram", Displayer: failing}, Channel{Name: "page", Displayer: working})

	// Exercise ---
	err := d.Display(context.Background(), testNotification)

	// Verify ---
	require.Nil(t, err)
	assert.Len(t, working.Shown(), 1)
	assert.Equal(t, 1, log.CountLevel(logging.WARNING))
}

func TestCompositeFailsIfEveryChannelFails(t *testing.T) {
	// Setup ---
	first := notification.NewFakeDisplayer()
	first.Errors = []error{errors.New("first")}
	second := notification.NewFakeDisplayer()
	second.Errors = []error{errors.New("second")}
	d := NewComposite(
		logging.NewFakeLogger(),
		Channel{Name: "email", Displayer: first},
		Channel{Name: "page", Displayer: second},
	)

	// Exercise ---
	err := d.Display(context.Background(), testNotification)

	// Verify ---
	require.NotNil(t, err)
	assert.ErrorIs(t, err, notification.ErrDisplayFailed)
	assert.Contains(t, err.Error(), "email: first")
	assert.Contains(t, err.Error(), "page: second")
}

func TestDisabledSkipsWithoutError(t *testing.T) {
	log := logging.NewFakeLogger()
	d := NewDisabled(log)

	err := d.Display(context.Background(), testNotification)

	assert.Nil(t, err)
	assert.Equal(t, 1, log.CountLevel(logging.DEBUG))
}
