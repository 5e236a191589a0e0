package push

import (
	"server/models"
	"strconv"
)

// PatrolOverdue alerts on-duty guards of a site that a checkpoint is overdue.
func PatrolOverdue(point *models.PatrolPoint, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	notification := Notification{
		Type:  NotificationTypePatrolOverdue,
		Title: "Patrol checkpoint overdue",
		Body:  point.Name + " has not been visited recently",
		Data: map[string]string{
			"patrol_point_id": strconv.FormatUint(point.ID, 10),
			"site_id":         strconv.FormatUint(point.SiteID, 10),
		},
	}
	_ = notification.SendTo(tokens)
}
