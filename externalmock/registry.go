// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Hand-written in the shape of MockGen output.
// Source: external/external.go (ServiceNodeRegistry)

package externalmock

import (
	"crypto/ed25519"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	ids "github.com/luxfi/ids"
	external "github.com/luxfi/quorumcop/external"
)

// MockServiceNodeRegistry is a mock of the ServiceNodeRegistry interface.
type MockServiceNodeRegistry struct {
	ctrl     *gomock.Controller
	recorder *MockServiceNodeRegistryMockRecorder
}

// MockServiceNodeRegistryMockRecorder is the mock recorder for MockServiceNodeRegistry.
type MockServiceNodeRegistryMockRecorder struct {
	mock *MockServiceNodeRegistry
}

// NewMockServiceNodeRegistry creates a new mock instance.
func NewMockServiceNodeRegistry(ctrl *gomock.Controller) *MockServiceNodeRegistry {
	mock := &MockServiceNodeRegistry{ctrl: ctrl}
	mock.recorder = &MockServiceNodeRegistryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServiceNodeRegistry) EXPECT() *MockServiceNodeRegistryMockRecorder {
	return m.recorder
}

// ListState mocks base method.
func (m *MockServiceNodeRegistry) ListState(keys []ids.ID) ([]external.NodeInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListState", keys)
	ret0, _ := ret[0].([]external.NodeInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListState indicates an expected call of ListState.
func (mr *MockServiceNodeRegistryMockRecorder) ListState(keys any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListState", reflect.TypeOf((*MockServiceNodeRegistry)(nil).ListState), keys)
}

// IsActive mocks base method.
func (m *MockServiceNodeRegistry) IsActive(key ids.ID) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsActive", key)
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsActive indicates an expected call of IsActive.
func (mr *MockServiceNodeRegistryMockRecorder) IsActive(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsActive", reflect.TypeOf((*MockServiceNodeRegistry)(nil).IsActive), key)
}

// Keys mocks base method.
func (m *MockServiceNodeRegistry) Keys() (ids.ID, ed25519.PrivateKey, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Keys")
	ret0, _ := ret[0].(ids.ID)
	ret1, _ := ret[1].(ed25519.PrivateKey)
	ret2, _ := ret[2].(bool)
	return ret0, ret1, ret2
}

// Keys indicates an expected call of Keys.
func (mr *MockServiceNodeRegistryMockRecorder) Keys() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Keys", reflect.TypeOf((*MockServiceNodeRegistry)(nil).Keys))
}

// RecordCheckpointVote mocks base method.
func (m *MockServiceNodeRegistry) RecordCheckpointVote(voterKey ids.ID, height uint64, present bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecordCheckpointVote", voterKey, height, present)
}

// RecordCheckpointVote indicates an expected call of RecordCheckpointVote.
func (mr *MockServiceNodeRegistryMockRecorder) RecordCheckpointVote(voterKey, height, present any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordCheckpointVote", reflect.TypeOf((*MockServiceNodeRegistry)(nil).RecordCheckpointVote), voterKey, height, present)
}

// CheckServiceNode mocks base method.
func (m *MockServiceNodeRegistry) CheckServiceNode(hfVersion uint8, key ids.ID, info external.NodeInfo) external.TestResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckServiceNode", hfVersion, key, info)
	ret0, _ := ret[0].(external.TestResult)
	return ret0
}

// CheckServiceNode indicates an expected call of CheckServiceNode.
func (mr *MockServiceNodeRegistryMockRecorder) CheckServiceNode(hfVersion, key, info any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckServiceNode", reflect.TypeOf((*MockServiceNodeRegistry)(nil).CheckServiceNode), hfVersion, key, info)
}

var _ external.ServiceNodeRegistry = (*MockServiceNodeRegistry)(nil)
