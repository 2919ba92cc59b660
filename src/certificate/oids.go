// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import "github.com/cashapp/certifikit/src/attestation"

// Object identifiers used by the certificate schema and its accessors.
const (
	OIDECPublicKey             = "1.2.840.10045.2.1"
	OIDSHA256WithECDSA         = "1.2.840.10045.4.3.2"
	OIDSHA384WithECDSA         = "1.2.840.10045.4.3.3"
	OIDRSAEncryption           = "1.2.840.113549.1.1.1"
	OIDSHA256WithRSAEncryption = "1.2.840.113549.1.1.11"
	OIDSHA384WithRSAEncryption = "1.2.840.113549.1.1.12"
	OIDEd25519                 = "1.3.101.112"
	OIDPrime256v1              = "1.2.840.10045.3.1.7"
	OIDSecp384r1               = "1.3.132.0.34"

	OIDCommonName             = "2.5.4.3"
	OIDSerialNumber           = "2.5.4.5"
	OIDCountryName            = "2.5.4.6"
	OIDLocalityName           = "2.5.4.7"
	OIDStateOrProvinceName    = "2.5.4.8"
	OIDOrganizationName       = "2.5.4.10"
	OIDOrganizationalUnitName = "2.5.4.11"
	OIDTitle                  = "2.5.4.12"
	OIDBusinessCategory       = "2.5.4.15"
	OIDEmailAddress           = "1.2.840.113549.1.9.1"

	OIDSubjectKeyIdentifier   = "2.5.29.14"
	OIDKeyUsage               = "2.5.29.15"
	OIDSubjectAlternativeName = "2.5.29.17"
	OIDBasicConstraints       = "2.5.29.19"
	OIDCRLDistributionPoints  = "2.5.29.31"
	OIDCertificatePolicies    = "2.5.29.32"
	OIDAuthorityKeyIdentifier = "2.5.29.35"
	OIDExtKeyUsage            = "2.5.29.37"
	OIDAuthorityInfoAccess    = "1.3.6.1.5.5.7.1.1"
	OIDSignedCertTimestamps   = "1.3.6.1.4.1.11129.2.4.2"
	OIDKeyDescription         = attestation.KeyDescriptionOID

	OIDOCSP      = "1.3.6.1.5.5.7.48.1"
	OIDCAIssuers = "1.3.6.1.5.5.7.48.2"
)

var signatureAlgorithmNames = map[string]string{
	OIDSHA256WithRSAEncryption: "SHA256WithRSA",
	OIDSHA384WithRSAEncryption: "SHA384WithRSA",
	OIDSHA256WithECDSA:         "SHA256withECDSA",
	OIDSHA384WithECDSA:         "SHA384withECDSA",
	OIDEd25519:                 "Ed25519",
}

var attributeNames = map[string]string{
	OIDCommonName:             "CN",
	OIDSerialNumber:           "SERIALNUMBER",
	OIDCountryName:            "C",
	OIDLocalityName:           "L",
	OIDStateOrProvinceName:    "ST",
	OIDOrganizationName:       "O",
	OIDOrganizationalUnitName: "OU",
	OIDTitle:                  "T",
	OIDBusinessCategory:       "businessCategory",
	OIDEmailAddress:           "E",
}
