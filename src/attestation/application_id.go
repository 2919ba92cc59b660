// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package attestation

import "github.com/cashapp/certifikit/src/der"

// PackageInfo is one package that shares the attesting application's UID.
type PackageInfo struct {
	Name    string
	Version int64
}

// ApplicationID is the parsed form of AuthorizationList.AttestationApplicationID.
//
//	AttestationApplicationId ::= SEQUENCE {
//	  package_infos      SET OF AttestationPackageInfo,
//	  signature_digests  SET OF OCTET STRING,
//	}
type ApplicationID struct {
	Packages         []PackageInfo
	SignatureDigests [][]byte
}

var packageInfoAdapter = der.Sequence("AttestationPackageInfo",
	func(p PackageInfo) []any { return []any{[]byte(p.Name), p.Version} },
	func(v []any) (PackageInfo, error) {
		return PackageInfo{Name: string(v[0].([]byte)), Version: v[1].(int64)}, nil
	},
	der.Field(der.OctetString),
	der.Field(der.Int64),
)

// ApplicationIDAdapter reads and writes ApplicationID.
var ApplicationIDAdapter = der.Sequence("AttestationApplicationId",
	func(a ApplicationID) []any { return []any{a.Packages, a.SignatureDigests} },
	func(v []any) (ApplicationID, error) {
		return ApplicationID{
			Packages:         v[0].([]PackageInfo),
			SignatureDigests: v[1].([][]byte),
		}, nil
	},
	der.Field(der.SetOf(packageInfoAdapter)),
	der.Field(der.SetOf(der.OctetString)),
)

// ParseApplicationID decodes the attestationApplicationId field.
func ParseApplicationID(data []byte) (ApplicationID, error) {
	return der.Unmarshal(ApplicationIDAdapter, data)
}
