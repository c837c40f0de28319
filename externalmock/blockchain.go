// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Hand-written in the shape of MockGen output.
// Source: external/external.go (Blockchain)
//
// Package externalmock provides go.uber.org/mock/gomock mocks for the
// external package's collaborator interfaces, generated-style by hand
// (mockgen itself is not run), following validators/validatorsmock/mock.go's
// per-interface file layout. Used where a test needs to assert call
// sequencing or call counts rather than just a behavioral fake — see
// externaltest for the latter.
package externalmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	ids "github.com/luxfi/ids"
	external "github.com/luxfi/quorumcop/external"
)

// MockBlockchain is a mock of the Blockchain interface.
type MockBlockchain struct {
	ctrl     *gomock.Controller
	recorder *MockBlockchainMockRecorder
}

// MockBlockchainMockRecorder is the mock recorder for MockBlockchain.
type MockBlockchainMockRecorder struct {
	mock *MockBlockchain
}

// NewMockBlockchain creates a new mock instance.
func NewMockBlockchain(ctrl *gomock.Controller) *MockBlockchain {
	mock := &MockBlockchain{ctrl: ctrl}
	mock.recorder = &MockBlockchainMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBlockchain) EXPECT() *MockBlockchainMockRecorder {
	return m.recorder
}

// CurrentHeight mocks base method.
func (m *MockBlockchain) CurrentHeight() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CurrentHeight")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// CurrentHeight indicates an expected call of CurrentHeight.
func (mr *MockBlockchainMockRecorder) CurrentHeight() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CurrentHeight", reflect.TypeOf((*MockBlockchain)(nil).CurrentHeight))
}

// TargetHeight mocks base method.
func (m *MockBlockchain) TargetHeight() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TargetHeight")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// TargetHeight indicates an expected call of TargetHeight.
func (mr *MockBlockchainMockRecorder) TargetHeight() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TargetHeight", reflect.TypeOf((*MockBlockchain)(nil).TargetHeight))
}

// HardForkVersion mocks base method.
func (m *MockBlockchain) HardForkVersion(height uint64) uint8 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HardForkVersion", height)
	ret0, _ := ret[0].(uint8)
	return ret0
}

// HardForkVersion indicates an expected call of HardForkVersion.
func (mr *MockBlockchainMockRecorder) HardForkVersion(height any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HardForkVersion", reflect.TypeOf((*MockBlockchain)(nil).HardForkVersion), height)
}

// BlockIDByHeight mocks base method.
func (m *MockBlockchain) BlockIDByHeight(height uint64) (ids.ID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockIDByHeight", height)
	ret0, _ := ret[0].(ids.ID)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// BlockIDByHeight indicates an expected call of BlockIDByHeight.
func (mr *MockBlockchainMockRecorder) BlockIDByHeight(height any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockIDByHeight", reflect.TypeOf((*MockBlockchain)(nil).BlockIDByHeight), height)
}

// Blocks mocks base method.
func (m *MockBlockchain) Blocks(height uint64, n int) ([]external.Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Blocks", height, n)
	ret0, _ := ret[0].([]external.Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Blocks indicates an expected call of Blocks.
func (mr *MockBlockchainMockRecorder) Blocks(height, n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Blocks", reflect.TypeOf((*MockBlockchain)(nil).Blocks), height, n)
}

// GetCheckpoint mocks base method.
func (m *MockBlockchain) GetCheckpoint(height uint64) (external.Checkpoint, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCheckpoint", height)
	ret0, _ := ret[0].(external.Checkpoint)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetCheckpoint indicates an expected call of GetCheckpoint.
func (mr *MockBlockchainMockRecorder) GetCheckpoint(height any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCheckpoint", reflect.TypeOf((*MockBlockchain)(nil).GetCheckpoint), height)
}

// UpdateCheckpoint mocks base method.
func (m *MockBlockchain) UpdateCheckpoint(cp external.Checkpoint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateCheckpoint", cp)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateCheckpoint indicates an expected call of UpdateCheckpoint.
func (mr *MockBlockchainMockRecorder) UpdateCheckpoint(cp any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCheckpoint", reflect.TypeOf((*MockBlockchain)(nil).UpdateCheckpoint), cp)
}

// Lock mocks base method.
func (m *MockBlockchain) Lock() func() {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Lock")
	ret0, _ := ret[0].(func())
	return ret0
}

// Lock indicates an expected call of Lock.
func (mr *MockBlockchainMockRecorder) Lock() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Lock", reflect.TypeOf((*MockBlockchain)(nil).Lock))
}

var _ external.Blockchain = (*MockBlockchain)(nil)
