package relay

import (
	"github.com/nbd-wtf/go-nostr"
)

// eTags returns the "e" tags of an event, preserving order.
func eTags(ev *nostr.Event) nostr.Tags {
	var out nostr.Tags
	for _, tag := range ev.Tags {
		if len(tag) >= 2 && tag[0] == "e" {
			out = append(out, tag)
		}
	}
	return out
}

// rootETag picks the tag threading a reply: the last e-tag marked "root",
// falling back to the first e-tag.
func rootETag(tags nostr.Tags) nostr.Tag {
	for i := len(tags) - 1; i >= 0; i-- {
		if len(tags[i]) >= 4 && tags[i][3] == "root" {
			return tags[i]
		}
	}
	return tags[0]
}

// composeReply builds a signed reply to target. Channel messages (kind 42)
// carry every e-tag of the target; plain notes carry only the thread root.
// created_at is target+1 so relays order the reply after its target.
func (c *Client) composeReply(content string, target *nostr.Event) (nostr.Event, error) {
	var tags nostr.Tags
	et := eTags(target)
	if target.Kind == nostr.KindChannelMessage {
		tags = append(tags, et...)
	} else if len(et) > 0 {
		tags = append(tags, rootETag(et))
	}
	tags = append(tags,
		nostr.Tag{"e", target.ID},
		nostr.Tag{"p", target.PubKey},
	)

	ev := nostr.Event{
		Kind:      target.Kind,
		Content:   content,
		Tags:      tags,
		CreatedAt: target.CreatedAt + 1,
	}
	err := ev.Sign(c.sk)
	return ev, err
}

// composePost builds a signed standalone post. When original is non-nil the
// post stays in the original's channel and orders after it.
func (c *Client) composePost(content string, original *nostr.Event) (nostr.Event, error) {
	kind := nostr.KindTextNote
	var tags nostr.Tags
	createdAt := nostr.Now() + 1
	if original != nil {
		kind = original.Kind
		createdAt = original.CreatedAt + 1
		if original.Kind == nostr.KindChannelMessage {
			tags = append(tags, nostr.Tag{"e", original.ID})
			tags = append(tags, eTags(original)...)
		}
	}

	ev := nostr.Event{
		Kind:      kind,
		Content:   content,
		Tags:      tags,
		CreatedAt: createdAt,
	}
	err := ev.Sign(c.sk)
	return ev, err
}

// composeReaction builds a signed kind-7 reaction referencing target.
func (c *Client) composeReaction(emoji string, target *nostr.Event) (nostr.Event, error) {
	ev := nostr.Event{
		Kind:    nostr.KindReaction,
		Content: emoji,
		Tags: nostr.Tags{
			nostr.Tag{"e", target.ID},
			nostr.Tag{"p", target.PubKey},
		},
		CreatedAt: nostr.Now() + 1,
	}
	err := ev.Sign(c.sk)
	return ev, err
}
