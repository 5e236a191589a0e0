// Package patrolwatch periodically flags patrol checkpoints that nobody has
// visited recently and alerts the on-duty guards of the site.
package patrolwatch

import (
	"log"
	"server/config"
	"server/db"
	"server/models"
	"server/push"
	"time"
)

var lastAlerted = map[uint64]int64{}

func StartWatching() {
	for {
		checkOverduePoints()
		time.Sleep(5 * time.Minute)
	}
}

func checkOverduePoints() {
	cutoff := time.Now().Add(-time.Duration(config.PATROL_OVERDUE_MINUTES) * time.Minute).Unix()

	points := []models.PatrolPoint{}
	if err := db.Instance.Find(&points).Error; err != nil {
		log.Printf("patrolwatch: %v", err)
		return
	}
	for i := range points {
		point := &points[i]
		// Re-alerting every cycle would just train people to ignore it
		if lastAlerted[point.ID] > cutoff {
			continue
		}
		tokens := onDutyTokens(point.SiteID)
		if len(tokens) == 0 {
			// Nobody on shift, nothing to alert
			continue
		}
		lastLog := models.PatrolLog{}
		db.Instance.Where("patrol_point_id = ? AND within_range = ?", point.ID, true).
			Order("created_at DESC").Limit(1).Find(&lastLog)
		if lastLog.CreatedAt >= cutoff {
			continue
		}
		log.Printf("patrolwatch: point %d (%s) overdue, alerting %d guards", point.ID, point.Name, len(tokens))
		push.PatrolOverdue(point, tokens)
		lastAlerted[point.ID] = time.Now().Unix()
	}
}

// onDutyTokens returns push tokens of guards with an open shift at the site.
func onDutyTokens(siteID uint64) []string {
	rows, err := db.Instance.Table("attendances").
		Select("guards.push_token").
		Joins("JOIN guards ON (guards.id = attendances.guard_id)").
		Where("attendances.site_id = ? AND attendances.check_out_at = 0 AND guards.push_token != ''", siteID).
		Rows()
	if err != nil {
		log.Printf("patrolwatch tokens: %v", err)
		return nil
	}
	defer rows.Close()
	tokens := []string{}
	for rows.Next() {
		token := ""
		if rows.Scan(&token) == nil && token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
