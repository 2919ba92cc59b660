// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package attestation decodes the Android key attestation certificate
// extension (OID 1.3.6.1.4.1.11129.2.1.17).
//
// The extension value is a KeyDescription:
//
//	KeyDescription ::= SEQUENCE {
//	  attestationVersion         INTEGER,
//	  attestationSecurityLevel   SecurityLevel,
//	  keymasterVersion           INTEGER,
//	  keymasterSecurityLevel     SecurityLevel,
//	  attestationChallenge       OCTET STRING,
//	  uniqueId                   OCTET STRING,
//	  softwareEnforced           AuthorizationList,
//	  teeEnforced                AuthorizationList,
//	}
//
// Every AuthorizationList field is an optional value boxed in an explicit
// context tag numbered after its Keymaster tag. Fields of type NULL carry no
// value and are reported as booleans that are true when present.
//
// [KeyDescriptionAdapter] plugs into the certificate extension registry; it
// can also be used on its own with [der.Unmarshal].
package attestation
