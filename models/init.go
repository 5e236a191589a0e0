package models

import (
	"log"
	"server/db"
)

func Init() {
	for _, model := range []interface{}{
		&Guard{},
		&Grant{},
		&Site{},
		&PatrolPoint{},
		&FaceProfile{},
		&Attendance{},
		&PatrolLog{},
		&LeaveRequest{},
		&Payslip{},
	} {
		if err := db.Instance.AutoMigrate(model); err != nil {
			log.Printf("Auto-migrate error: %v", err)
		}
	}
}
