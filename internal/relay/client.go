// Package relay wraps the go-nostr client: subscriptions the bot listens on,
// and composition, signing and publication of its outbound events.
package relay

import (
	"context"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"
)

// Publisher is the reply port handed to command handlers. Publish failures
// are logged, never retried, and never surfaced to the handler.
type Publisher interface {
	Reply(ctx context.Context, content string, target *nostr.Event)
	Post(ctx context.Context, content string, original *nostr.Event)
	React(ctx context.Context, emoji string, target *nostr.Event)
}

// Client is a single-relay nostr client bound to the bot's key pair.
type Client struct {
	url   string
	sk    string
	pk    string
	relay *nostr.Relay
	log   *zap.Logger
}

func NewClient(url, privateKeyHex string, log *zap.Logger) (*Client, error) {
	pk, err := nostr.GetPublicKey(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return &Client{url: url, sk: privateKeyHex, pk: pk, log: log}, nil
}

// PublicKey returns the bot's public key in hex.
func (c *Client) PublicKey() string { return c.pk }

// Connect dials the relay.
func (c *Client) Connect(ctx context.Context) error {
	r, err := nostr.RelayConnect(ctx, c.url)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.url, err)
	}
	c.relay = r
	return nil
}

// Close terminates the relay connection.
func (c *Client) Close() error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Close()
}

// SubscribeMentions subscribes to text and channel posts addressed to the bot
// from now on. The returned subscription exposes Events and EndOfStoredEvents.
func (c *Client) SubscribeMentions(ctx context.Context) (*nostr.Subscription, error) {
	since := nostr.Now()
	return c.relay.Subscribe(ctx, nostr.Filters{{
		Kinds: []int{nostr.KindTextNote, nostr.KindChannelMessage},
		Tags:  nostr.TagMap{"p": []string{c.pk}},
		Since: &since,
	}})
}

// SubscribeFirehose subscribes to all text and channel posts from now on.
// The mention watcher listens here for the bot's call names.
func (c *Client) SubscribeFirehose(ctx context.Context) (*nostr.Subscription, error) {
	since := nostr.Now()
	return c.relay.Subscribe(ctx, nostr.Filters{{
		Kinds: []int{nostr.KindTextNote, nostr.KindChannelMessage},
		Since: &since,
	}})
}

// publish sends a signed event; failures are logged only.
func (c *Client) publish(ctx context.Context, ev nostr.Event) {
	if err := c.relay.Publish(ctx, ev); err != nil {
		c.log.Warn("publish failed", zap.String("id", ev.ID), zap.Error(err))
		return
	}
	c.log.Debug("published", zap.String("id", ev.ID), zap.Int("kind", ev.Kind))
}

// Reply composes, signs and publishes a threaded reply to target.
func (c *Client) Reply(ctx context.Context, content string, target *nostr.Event) {
	ev, err := c.composeReply(content, target)
	if err != nil {
		c.log.Error("compose reply failed", zap.Error(err))
		return
	}
	c.publish(ctx, ev)
}

// Post composes, signs and publishes a standalone post; original may be nil.
func (c *Client) Post(ctx context.Context, content string, original *nostr.Event) {
	ev, err := c.composePost(content, original)
	if err != nil {
		c.log.Error("compose post failed", zap.Error(err))
		return
	}
	c.publish(ctx, ev)
}

// React composes, signs and publishes a reaction to target.
func (c *Client) React(ctx context.Context, emoji string, target *nostr.Event) {
	ev, err := c.composeReaction(emoji, target)
	if err != nil {
		c.log.Error("compose reaction failed", zap.Error(err))
		return
	}
	c.publish(ctx, ev)
}
