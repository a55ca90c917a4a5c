package services

import (
	"context"
	"errors"

	"meridian-schools/app/models"
)

// errStoreDown simulates an unreachable fee store.
var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory FeeReader for service tests. Setting failAll
// makes every call fail the way a dead database would.
type fakeStore struct {
	assignments    []*models.StudentFeeAssignment
	payments       []*models.FeePayment
	allocations    []*models.FeePaymentAllocation
	students       []*models.Student
	batches        map[string]string
	structureNames map[string]string
	componentNames map[string]string
	failAll        bool
}

func (f *fakeStore) AssignmentsBySchool(_ context.Context, schoolID string) ([]*models.StudentFeeAssignment, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	studentSchool := make(map[string]string)
	for _, st := range f.students {
		studentSchool[st.ID] = st.SchoolID
	}
	var out []*models.StudentFeeAssignment
	for _, a := range f.assignments {
		if studentSchool[a.StudentID] == schoolID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) AssignmentsByStudent(_ context.Context, studentID string) ([]*models.StudentFeeAssignment, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	var out []*models.StudentFeeAssignment
	for _, a := range f.assignments {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) PaymentsByAssignments(_ context.Context, assignmentIDs []string) ([]*models.FeePayment, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	ids := make(map[string]bool, len(assignmentIDs))
	for _, id := range assignmentIDs {
		ids[id] = true
	}
	var out []*models.FeePayment
	for _, p := range f.payments {
		if ids[p.AssignmentID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) AllocationsByPayments(_ context.Context, paymentIDs []string) ([]*models.FeePaymentAllocation, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	ids := make(map[string]bool, len(paymentIDs))
	for _, id := range paymentIDs {
		ids[id] = true
	}
	var out []*models.FeePaymentAllocation
	for _, al := range f.allocations {
		if ids[al.PaymentID] {
			out = append(out, al)
		}
	}
	return out, nil
}

func (f *fakeStore) StudentsByIDs(_ context.Context, studentIDs []string) ([]*models.Student, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	ids := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		ids[id] = true
	}
	var out []*models.Student
	for _, st := range f.students {
		if ids[st.ID] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStore) CurrentBatches(_ context.Context, studentIDs []string) (map[string]string, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	out := make(map[string]string)
	for _, id := range studentIDs {
		if name, ok := f.batches[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func (f *fakeStore) FeeStructureNames(_ context.Context, structureIDs []string) (map[string]string, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	return pick(f.structureNames, structureIDs), nil
}

func (f *fakeStore) FeeComponentNames(_ context.Context, componentIDs []string) (map[string]string, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	return pick(f.componentNames, componentIDs), nil
}

func pick(m map[string]string, ids []string) map[string]string {
	out := make(map[string]string)
	for _, id := range ids {
		if v, ok := m[id]; ok {
			out[id] = v
		}
	}
	return out
}
