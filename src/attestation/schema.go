// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package attestation

import "github.com/cashapp/certifikit/src/der"

// RootOfTrustAdapter reads and writes RootOfTrust.
var RootOfTrustAdapter = der.Sequence("RootOfTrust",
	func(v RootOfTrust) []any {
		return []any{v.VerifiedBootKey, v.DeviceLocked, int64(v.VerifiedBootState), v.VerifiedBootHash}
	},
	func(v []any) (RootOfTrust, error) {
		return RootOfTrust{
			VerifiedBootKey:   v[0].([]byte),
			DeviceLocked:      v[1].(bool),
			VerifiedBootState: VerifiedBootState(v[2].(int64)),
			VerifiedBootHash:  v[3].([]byte),
		}, nil
	},
	der.Field(der.OctetString),
	der.Field(der.Boolean),
	der.Field(der.Enumerated),
	der.Field(der.OctetString),
)

func integer(tag uint64) der.Component {
	return der.Field(der.Optional(der.Context(tag, der.Int64)))
}

func integerSet(tag uint64) der.Component {
	return der.Field(der.Optional(der.Context(tag, der.SetOf(der.Int64))))
}

func null(tag uint64) der.Component {
	return der.Field(der.Optional(der.Context(tag, der.Null)))
}

func octets(tag uint64) der.Component {
	return der.Field(der.Optional(der.Context(tag, der.OctetString)))
}

func nullValue(present bool) *struct{} {
	if present {
		return &struct{}{}
	}
	return nil
}

func setValue(v []int64) *[]int64 {
	if v == nil {
		return nil
	}
	return &v
}

func octetsValue(v []byte) *[]byte {
	if v == nil {
		return nil
	}
	return &v
}

func asInteger(v any) *int64 { return v.(*int64) }

func asIntegerSet(v any) []int64 {
	if p := v.(*[]int64); p != nil {
		return *p
	}
	return nil
}

func asNull(v any) bool { return v.(*struct{}) != nil }

func asOctets(v any) []byte {
	if p := v.(*[]byte); p != nil {
		return *p
	}
	return nil
}

// AuthorizationListAdapter reads and writes AuthorizationList. The decompose
// and construct functions below follow the component order exactly.
var AuthorizationListAdapter = der.Sequence("AuthorizationList",
	func(v AuthorizationList) []any {
		return []any{
			setValue(v.Purpose),
			v.Algorithm,
			v.KeySize,
			setValue(v.Digest),
			setValue(v.Padding),
			v.EcCurve,
			v.RsaPublicExponent,
			nullValue(v.RollbackResistance),
			v.ActiveDateTime,
			v.OriginationExpireDateTime,
			v.UsageExpireDateTime,
			nullValue(v.NoAuthRequired),
			v.UserAuthType,
			v.AuthTimeout,
			nullValue(v.AllowWhileOnBody),
			nullValue(v.TrustedUserPresenceRequired),
			nullValue(v.TrustedConfirmationRequired),
			nullValue(v.UnlockedDeviceRequired),
			nullValue(v.AllApplications),
			octetsValue(v.ApplicationID),
			v.CreationDateTime,
			v.Origin,
			nullValue(v.RollbackResistant),
			v.RootOfTrust,
			v.OsVersion,
			v.OsPatchLevel,
			octetsValue(v.AttestationApplicationID),
			octetsValue(v.AttestationIDBrand),
			octetsValue(v.AttestationIDDevice),
			octetsValue(v.AttestationIDProduct),
			octetsValue(v.AttestationIDSerial),
			octetsValue(v.AttestationIDImei),
			octetsValue(v.AttestationIDMeid),
			octetsValue(v.AttestationIDManufacturer),
			octetsValue(v.AttestationIDModel),
			v.VendorPatchLevel,
			v.BootPatchLevel,
		}
	},
	func(v []any) (AuthorizationList, error) {
		return AuthorizationList{
			Purpose:                     asIntegerSet(v[0]),
			Algorithm:                   asInteger(v[1]),
			KeySize:                     asInteger(v[2]),
			Digest:                      asIntegerSet(v[3]),
			Padding:                     asIntegerSet(v[4]),
			EcCurve:                     asInteger(v[5]),
			RsaPublicExponent:           asInteger(v[6]),
			RollbackResistance:          asNull(v[7]),
			ActiveDateTime:              asInteger(v[8]),
			OriginationExpireDateTime:   asInteger(v[9]),
			UsageExpireDateTime:         asInteger(v[10]),
			NoAuthRequired:              asNull(v[11]),
			UserAuthType:                asInteger(v[12]),
			AuthTimeout:                 asInteger(v[13]),
			AllowWhileOnBody:            asNull(v[14]),
			TrustedUserPresenceRequired: asNull(v[15]),
			TrustedConfirmationRequired: asNull(v[16]),
			UnlockedDeviceRequired:      asNull(v[17]),
			AllApplications:             asNull(v[18]),
			ApplicationID:               asOctets(v[19]),
			CreationDateTime:            asInteger(v[20]),
			Origin:                      asInteger(v[21]),
			RollbackResistant:           asNull(v[22]),
			RootOfTrust:                 v[23].(*RootOfTrust),
			OsVersion:                   asInteger(v[24]),
			OsPatchLevel:                asInteger(v[25]),
			AttestationApplicationID:    asOctets(v[26]),
			AttestationIDBrand:          asOctets(v[27]),
			AttestationIDDevice:         asOctets(v[28]),
			AttestationIDProduct:        asOctets(v[29]),
			AttestationIDSerial:         asOctets(v[30]),
			AttestationIDImei:           asOctets(v[31]),
			AttestationIDMeid:           asOctets(v[32]),
			AttestationIDManufacturer:   asOctets(v[33]),
			AttestationIDModel:          asOctets(v[34]),
			VendorPatchLevel:            asInteger(v[35]),
			BootPatchLevel:              asInteger(v[36]),
		}, nil
	},
	integerSet(1),
	integer(2),
	integer(3),
	integerSet(5),
	integerSet(6),
	integer(10),
	integer(200),
	null(303),
	integer(400),
	integer(401),
	integer(402),
	null(503),
	integer(504),
	integer(505),
	null(506),
	null(507),
	null(508),
	null(509),
	null(600),
	octets(601),
	integer(701),
	integer(702),
	null(703),
	der.Field(der.Optional(der.Context(704, RootOfTrustAdapter))),
	integer(705),
	integer(706),
	octets(709),
	octets(710),
	octets(711),
	octets(712),
	octets(713),
	octets(714),
	octets(715),
	octets(716),
	octets(717),
	integer(718),
	integer(719),
)

// KeyDescriptionAdapter reads and writes KeyDescription.
var KeyDescriptionAdapter = der.Sequence("KeyDescription",
	func(v KeyDescription) []any {
		return []any{
			v.AttestationVersion,
			int64(v.AttestationSecurityLevel),
			v.KeymasterVersion,
			int64(v.KeymasterSecurityLevel),
			v.AttestationChallenge,
			v.UniqueID,
			v.SoftwareEnforced,
			v.TeeEnforced,
		}
	},
	func(v []any) (KeyDescription, error) {
		return KeyDescription{
			AttestationVersion:       v[0].(int64),
			AttestationSecurityLevel: SecurityLevel(v[1].(int64)),
			KeymasterVersion:         v[2].(int64),
			KeymasterSecurityLevel:   SecurityLevel(v[3].(int64)),
			AttestationChallenge:     v[4].([]byte),
			UniqueID:                 v[5].([]byte),
			SoftwareEnforced:         v[6].(AuthorizationList),
			TeeEnforced:              v[7].(AuthorizationList),
		}, nil
	},
	der.Field(der.Int64),
	der.Field(der.Enumerated),
	der.Field(der.Int64),
	der.Field(der.Enumerated),
	der.Field(der.OctetString),
	der.Field(der.OctetString),
	der.Field(AuthorizationListAdapter),
	der.Field(AuthorizationListAdapter),
)
