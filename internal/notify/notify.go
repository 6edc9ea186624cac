// Package notify dispatches web push notifications when articles are
// published. Subscriptions are persisted as documents in their own
// collection, like everything else in the store.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/vibebase/vibebase/internal/jsonldb"
	"github.com/vibebase/vibebase/internal/news"
)

// CollectionSubscriptions holds web push subscriptions.
const CollectionSubscriptions = "push_subscriptions"

// VAPIDKeys is the key pair used to sign push requests.
type VAPIDKeys struct {
	Public     string
	Private    string
	Subscriber string
}

// Notifier sends web push notifications to stored subscriptions.
// A nil Notifier (or one without keys) silently does nothing.
type Notifier struct {
	db    *jsonldb.Store
	vapid VAPIDKeys
}

// New creates a notifier. Returns nil when the key pair is not configured.
func New(db *jsonldb.Store, vapid VAPIDKeys) *Notifier {
	if vapid.Public == "" || vapid.Private == "" {
		return nil
	}
	return &Notifier{db: db, vapid: vapid}
}

// Subscribe stores a push subscription. Re-subscribing the same endpoint is
// idempotent.
func (n *Notifier) Subscribe(endpoint, p256dh, auth string) error {
	docs, err := n.db.Read(CollectionSubscriptions)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.MetaString("endpoint") == endpoint {
			return nil
		}
	}
	doc := jsonldb.NewDocument("sub", "push_subscription")
	doc.SetMeta("endpoint", endpoint)
	doc.SetMeta("p256dh", p256dh)
	doc.SetMeta("auth", auth)
	return n.db.Append(CollectionSubscriptions, doc)
}

// Unsubscribe removes the subscription with the given endpoint.
func (n *Notifier) Unsubscribe(endpoint string) error {
	docs, err := n.db.Read(CollectionSubscriptions)
	if err != nil {
		return err
	}
	kept := docs[:0]
	for _, d := range docs {
		if d.MetaString("endpoint") != endpoint {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	return n.db.Replace(CollectionSubscriptions, kept)
}

// ArticlePublished pushes a notification for a newly published article to
// every stored subscription. It never blocks or returns an error: delivery
// failures are logged, and endpoints answering 410 Gone are dropped.
func (n *Notifier) ArticlePublished(ctx context.Context, article *news.Article) {
	if n == nil {
		return
	}
	docs, err := n.db.Read(CollectionSubscriptions)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read push subscriptions", "err", err)
		return
	}
	if len(docs) == 0 {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"id":    article.ID,
		"title": article.Title,
		"type":  "article_published",
	})
	go func() {
		for _, d := range docs {
			resp, err := webpush.SendNotification(payload, &webpush.Subscription{
				Endpoint: d.MetaString("endpoint"),
				Keys: webpush.Keys{
					P256dh: d.MetaString("p256dh"),
					Auth:   d.MetaString("auth"),
				},
			}, &webpush.Options{
				Subscriber:      n.vapid.Subscriber,
				VAPIDPublicKey:  n.vapid.Public,
				VAPIDPrivateKey: n.vapid.Private,
				TTL:             86400,
			})
			if err != nil {
				slog.Error("Web push send failed", "err", err, "endpoint", d.MetaString("endpoint"))
				continue
			}
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusGone {
				if err := n.Unsubscribe(d.MetaString("endpoint")); err != nil {
					slog.Error("Failed to drop expired push subscription", "err", err)
				}
			}
		}
	}()
}
