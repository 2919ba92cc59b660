// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package attestation

import (
	"fmt"

	"github.com/cashapp/certifikit/src/der"
)

// KeyDescriptionOID identifies the attestation extension.
const KeyDescriptionOID = "1.3.6.1.4.1.11129.2.1.17"

// SecurityLevel is where a key or attestation lives.
type SecurityLevel int64

const (
	SecurityLevelSoftware           SecurityLevel = 0
	SecurityLevelTrustedEnvironment SecurityLevel = 1
	SecurityLevelStrongBox          SecurityLevel = 2
)

func (s SecurityLevel) String() string {
	switch s {
	case SecurityLevelSoftware:
		return "Software"
	case SecurityLevelTrustedEnvironment:
		return "TrustedEnvironment"
	case SecurityLevelStrongBox:
		return "StrongBox"
	}
	return fmt.Sprintf("SecurityLevel(%d)", int64(s))
}

// VerifiedBootState is the device's verified boot outcome.
type VerifiedBootState int64

const (
	VerifiedBootVerified   VerifiedBootState = 0
	VerifiedBootSelfSigned VerifiedBootState = 1
	VerifiedBootUnverified VerifiedBootState = 2
	VerifiedBootFailed     VerifiedBootState = 3
)

func (v VerifiedBootState) String() string {
	switch v {
	case VerifiedBootVerified:
		return "Verified"
	case VerifiedBootSelfSigned:
		return "SelfSigned"
	case VerifiedBootUnverified:
		return "Unverified"
	case VerifiedBootFailed:
		return "Failed"
	}
	return fmt.Sprintf("VerifiedBootState(%d)", int64(v))
}

// KeyDescription is the decoded attestation extension.
type KeyDescription struct {
	AttestationVersion       int64
	AttestationSecurityLevel SecurityLevel
	KeymasterVersion         int64
	KeymasterSecurityLevel   SecurityLevel
	AttestationChallenge     []byte
	UniqueID                 []byte
	SoftwareEnforced         AuthorizationList
	TeeEnforced              AuthorizationList
}

// RootOfTrust describes the verified boot state of the device.
type RootOfTrust struct {
	VerifiedBootKey   []byte
	DeviceLocked      bool
	VerifiedBootState VerifiedBootState
	VerifiedBootHash  []byte
}

// AuthorizationList holds the key properties enforced by one security level.
// Nil pointers and slices are absent fields.
type AuthorizationList struct {
	Purpose                     []int64      // [1]
	Algorithm                   *int64       // [2]
	KeySize                     *int64       // [3]
	Digest                      []int64      // [5]
	Padding                     []int64      // [6]
	EcCurve                     *int64       // [10]
	RsaPublicExponent           *int64       // [200]
	RollbackResistance          bool         // [303]
	ActiveDateTime              *int64       // [400]
	OriginationExpireDateTime   *int64       // [401]
	UsageExpireDateTime         *int64       // [402]
	NoAuthRequired              bool         // [503]
	UserAuthType                *int64       // [504]
	AuthTimeout                 *int64       // [505]
	AllowWhileOnBody            bool         // [506]
	TrustedUserPresenceRequired bool         // [507]
	TrustedConfirmationRequired bool         // [508]
	UnlockedDeviceRequired      bool         // [509]
	AllApplications             bool         // [600]
	ApplicationID               []byte       // [601]
	CreationDateTime            *int64       // [701]
	Origin                      *int64       // [702]
	RollbackResistant           bool         // [703]
	RootOfTrust                 *RootOfTrust // [704]
	OsVersion                   *int64       // [705]
	OsPatchLevel                *int64       // [706]
	AttestationApplicationID    []byte       // [709]
	AttestationIDBrand          []byte       // [710]
	AttestationIDDevice         []byte       // [711]
	AttestationIDProduct        []byte       // [712]
	AttestationIDSerial         []byte       // [713]
	AttestationIDImei           []byte       // [714]
	AttestationIDMeid           []byte       // [715]
	AttestationIDManufacturer   []byte       // [716]
	AttestationIDModel          []byte       // [717]
	VendorPatchLevel            *int64       // [718]
	BootPatchLevel              *int64       // [719]
}

// Decode parses the DER value of the attestation extension.
func Decode(data []byte, opts ...der.ReaderOption) (KeyDescription, error) {
	return der.Unmarshal(KeyDescriptionAdapter, data, opts...)
}

// Encode returns the DER value of the attestation extension.
func Encode(kd KeyDescription) ([]byte, error) {
	return der.Marshal(KeyDescriptionAdapter, kd)
}
