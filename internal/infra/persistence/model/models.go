// Package model contains the GORM table structs of the sync store.
package model

// All lists every table struct, in creation order.
func All() []any {
	return []any{
		&SyncGroupModel{},
		&DeviceMembershipModel{},
		&GroupHistoryModel{},
		&RecordModel{},
	}
}
