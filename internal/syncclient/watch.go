package syncclient

import (
	"context"
	"fmt"
	"meetsync/internal/aggregation"
	"meetsync/internal/models"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// View is the client-side picture of a group, recomputed from scratch on
// every change.
type View struct {
	Group        *models.Group
	Members      []*models.Member
	Availability []*models.Availability
	BestDates    []models.BestDateEntry
	Calendar     []models.DayAvailability
	Responses    models.ResponseSummary
}

func computeView(group *models.Group, members []*models.Member, availability []*models.Availability) View {
	return View{
		Group:        group,
		Members:      members,
		Availability: availability,
		BestDates:    aggregation.BestDates(group.AvailabilityMode, members, availability),
		Calendar:     aggregation.Calendar(group.AvailabilityMode, members, availability),
		Responses:    aggregation.Responses(members, availability),
	}
}

// Watch subscribes to groupID and calls onView with the initial view and
// again after every availability change of the group. Update payloads only
// trigger a refetch of the member and availability lists; they are never
// applied directly. Watch returns ctx.Err() on cancellation, or the read error when
// the connection drops.
func (c *Client) Watch(ctx context.Context, groupID string, onView func(View)) error {
	wsURL, err := c.wsURL()
	if err != nil {
		return err
	}
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := conn.WriteJSON(map[string]string{"type": string(models.MessageJoinGroup), "groupId": groupID}); err != nil {
		return c.readErr(ctx, err)
	}
	if err := c.awaitJoined(conn, groupID); err != nil {
		return c.readErr(ctx, err)
	}

	group, err := c.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	members, availability, err := c.fetchState(ctx, groupID)
	if err != nil {
		return err
	}
	onView(computeView(group, members, availability))

	for {
		msg, err := readMessage(conn)
		if err != nil {
			return c.readErr(ctx, err)
		}
		if msg.Type != models.MessageAvailabilityUpdated || !concernsGroup(msg, groupID) {
			continue
		}
		freshMembers, freshAvailability, err := c.fetchState(ctx, groupID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.onError(fmt.Errorf("refetch group state: %w", err))
			continue
		}
		members, availability = freshMembers, freshAvailability
		onView(computeView(group, members, availability))
	}
}

// fetchState loads members before availability so a member who joins and
// responds in between is never counted without being listed.
func (c *Client) fetchState(ctx context.Context, groupID string) ([]*models.Member, []*models.Availability, error) {
	members, err := c.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	availability, err := c.ListAvailability(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return members, availability, nil
}

func (c *Client) awaitJoined(conn *websocket.Conn, groupID string) error {
	for {
		msg, err := readMessage(conn)
		if err != nil {
			return err
		}
		if msg.Type != models.MessageGroupJoined {
			continue
		}
		var ack struct {
			GroupID string `json:"groupId"`
		}
		if json.Unmarshal(msg.Data, &ack) == nil && ack.GroupID == groupID {
			return nil
		}
	}
}

func (c *Client) readErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return ErrConnectionClosed
	}
	return err
}

func readMessage(conn *websocket.Conn) (models.InboundMessage, error) {
	var msg models.InboundMessage
	_, data, err := conn.ReadMessage()
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		// not ours; skip
		return models.InboundMessage{}, nil
	}
	return msg, nil
}

// concernsGroup filters updates by the record's group id. Frames without a
// readable group id are treated as relevant.
func concernsGroup(msg models.InboundMessage, groupID string) bool {
	var record struct {
		GroupID string `json:"groupId"`
	}
	if err := json.Unmarshal(msg.Data, &record); err != nil || record.GroupID == "" {
		return true
	}
	return record.GroupID == groupID
}
