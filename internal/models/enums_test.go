package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("patient")
	assert.True(t, ok)
	assert.Equal(t, RolePatient, role)

	role, ok = ParseRole("doctor")
	assert.True(t, ok)
	assert.Equal(t, RoleDoctor, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)

	_, ok = ParseRole("Doctor")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestParseAppointmentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "completed", "cancelled"} {
		status, ok := ParseAppointmentStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, AppointmentStatus(valid), status)
	}

	_, ok := ParseAppointmentStatus("rescheduled")
	assert.False(t, ok)

	_, ok = ParseAppointmentStatus("Confirmed")
	assert.False(t, ok)
}
