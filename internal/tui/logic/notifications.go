package logic

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
)

// CheckDueMsg asks the handler to announce events that start soon. It is
// sent by the notification schedule.
type CheckDueMsg time.Time

// Time returns the check's wall clock reading.
func (m CheckDueMsg) Time() time.Time { return time.Time(m) }

// defaultLead is used when the configured lead time is not positive.
const defaultLead = 10 * time.Minute

// notifyKey identifies one occurrence of an event so a rescheduled event
// is announced again.
func notifyKey(ev model.Event) string {
	return ev.Date.String() + " " + ev.StartTime
}

// UpcomingEvents returns the timed, uncompleted events starting between now
// and now+lead that have not been announced for their current slot.
func UpcomingEvents(events []model.Event, now time.Time, lead time.Duration, notified map[string]string) []model.Event {
	var out []model.Event
	for _, ev := range events {
		if ev.Completed != nil && *ev.Completed {
			continue
		}
		if notified[ev.ID] == notifyKey(ev) {
			continue
		}
		h, m, ok := model.ParseClock(ev.StartTime)
		if !ok {
			continue
		}
		start := ev.Date.Time(now.Location()).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
		if start.Before(now) || start.Sub(now) > lead {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (h *Handler) handleCheckDue(t time.Time) tea.Cmd {
	if h.Workspace == nil || h.Config == nil || !h.Config.Notify.Enabled {
		return nil
	}

	lead := time.Duration(h.Config.Notify.LeadMinutes) * time.Minute
	if lead <= 0 {
		lead = defaultLead
	}

	events := h.Workspace.Events.ForDate(datekey.Today(t))
	due := UpcomingEvents(events, t, lead, h.Notified)
	h.Log.Debug("checked upcoming events", zap.Time("at", t), zap.Int("events", len(events)), zap.Int("due", len(due)))
	if len(due) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	for _, ev := range due {
		h.Notified[ev.ID] = notifyKey(ev)

		title := ev.Title
		body := fmt.Sprintf("Starts at %s", ev.StartTime)
		log := h.Log
		cmds = append(cmds, func() tea.Msg {
			if err := beeep.Notify(title, body, ""); err != nil {
				log.Warn("failed to send notification", zap.String("event", title), zap.Error(err))
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}
