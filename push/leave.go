package push

import (
	"server/models"
	"strconv"
)

// LeaveDecision tells the guard their leave request was approved or rejected.
func LeaveDecision(request *models.LeaveRequest, guard *models.Guard) {
	if guard.PushToken == "" {
		return
	}
	body := "Your leave request " + request.FromDate + " - " + request.ToDate + " was "
	if request.Status == models.LeaveStatusApproved {
		body += "approved"
	} else {
		body += "rejected"
	}
	notification := Notification{
		Type:  NotificationTypeLeaveDecision,
		Title: "Leave request update",
		Body:  body,
		Data: map[string]string{
			"leave_id": strconv.FormatUint(request.ID, 10),
			"status":   strconv.Itoa(int(request.Status)),
		},
	}
	_ = notification.SendTo([]string{guard.PushToken})
}
