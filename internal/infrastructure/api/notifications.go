package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ListNotifications GET /notifications?read=&type=.
// Si el servidor no informa count se usa la longitud de la lista.
func (c *Client) ListNotifications(ctx context.Context, q dto.NotificationQuery) ([]entity.Notification, int, error) {
	params := url.Values{}
	if q.Read != nil {
		params.Set("read", strconv.FormatBool(*q.Read))
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	var out dto.Envelope[[]dto.NotificationDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/notifications", query: params, out: &out, authorized: true}); err != nil {
		return nil, 0, err
	}
	list := make([]entity.Notification, 0, len(out.Data))
	for _, n := range out.Data {
		list = append(list, n.ToEntity())
	}
	count := len(list)
	if out.Count != nil {
		count = *out.Count
	}
	return list, count, nil
}

// GenerateNotifications POST /notifications/generate.
func (c *Client) GenerateNotifications(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/notifications/generate", authorized: true})
}

// MarkNotificationRead PUT /notifications/:id/read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodPut, path: "/notifications/" + url.PathEscape(id) + "/read", authorized: true})
}

// MarkAllNotificationsRead PUT /notifications/read-all.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPut, path: "/notifications/read-all", authorized: true})
}

// DeleteNotification DELETE /notifications/:id.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/notifications/" + url.PathEscape(id), authorized: true})
}
