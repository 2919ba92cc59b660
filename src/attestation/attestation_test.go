// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package attestation_test

import (
	"encoding/hex"
	"testing"

	"github.com/cashapp/certifikit/src/attestation"
	"github.com/cashapp/certifikit/src/certificate"
	"github.com/cashapp/certifikit/src/der"
	"github.com/cashapp/certifikit/src/internal/testcerts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeFromCertificate(t *testing.T) {
	cert, err := certificate.Decode(testcerts.Attestation())
	require.NoError(t, err)

	assert.Equal(t, "Android Keystore Key", cert.CommonName())
	name, err := cert.TBSCertificate.SignatureAlgorithmName()
	require.NoError(t, err)
	assert.Equal(t, "SHA256withECDSA", name)

	kd, ok := cert.KeyDescription()
	require.True(t, ok)

	want := attestation.KeyDescription{
		AttestationVersion:       3,
		AttestationSecurityLevel: attestation.SecurityLevelStrongBox,
		KeymasterVersion:         4,
		KeymasterSecurityLevel:   attestation.SecurityLevelStrongBox,
		AttestationChallenge:     []byte("abc"),
		UniqueID:                 []byte{},
		SoftwareEnforced: attestation.AuthorizationList{
			CreationDateTime:         int64p(1562602372883),
			AttestationApplicationID: mustHex(t, testcerts.AttestationApplicationIDHex),
		},
		TeeEnforced: attestation.AuthorizationList{
			Purpose:        []int64{2, 3},
			Algorithm:      int64p(3),
			KeySize:        int64p(256),
			Digest:         []int64{4},
			NoAuthRequired: true,
			Origin:         int64p(0),
			RootOfTrust: &attestation.RootOfTrust{
				VerifiedBootKey:   make([]byte, 32),
				DeviceLocked:      false,
				VerifiedBootState: attestation.VerifiedBootUnverified,
				VerifiedBootHash:  mustHex(t, "728db1274f1f1cf1571de4380b048a554ac4a380e76f5355083529084a937801"),
			},
			OsVersion:        int64p(0),
			OsPatchLevel:     int64p(201907),
			VendorPatchLevel: int64p(20190705),
			BootPatchLevel:   int64p(20190700),
		},
	}
	assert.Equal(t, want, kd)

	ext, ok := cert.TBSCertificate.Extension(attestation.KeyDescriptionOID)
	require.True(t, ok)
	assert.False(t, ext.Critical)
}

func TestApplicationID(t *testing.T) {
	data := mustHex(t, testcerts.AttestationApplicationIDHex)

	id, err := attestation.ParseApplicationID(data)
	require.NoError(t, err)

	require.Len(t, id.Packages, 13)
	assert.Equal(t, attestation.PackageInfo{Name: "android", Version: 29}, id.Packages[0])
	assert.Equal(t, attestation.PackageInfo{Name: "com.google.android.hiddenmenu", Version: 1}, id.Packages[11])
	assert.Equal(t, attestation.PackageInfo{Name: "com.android.providers.settings", Version: 29}, id.Packages[12])

	require.Len(t, id.SignatureDigests, 1)
	assert.Equal(t, "301aa3cb081134501c45f1422abc66c24224fd5ded5fdc8f17e697176fd866aa", hex.EncodeToString(id.SignatureDigests[0]))

	encoded, err := der.Marshal(attestation.ApplicationIDAdapter, id)
	require.NoError(t, err)
	assert.Equal(t, data, encoded)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		kd   attestation.KeyDescription
	}{
		{
			name: "Empty",
			kd: attestation.KeyDescription{
				AttestationVersion:   1,
				AttestationChallenge: []byte{},
				UniqueID:             []byte{},
			},
		},
		{
			name: "Software",
			kd: attestation.KeyDescription{
				AttestationVersion:       4,
				AttestationSecurityLevel: attestation.SecurityLevelSoftware,
				KeymasterVersion:         41,
				AttestationChallenge:     []byte("challenge"),
				UniqueID:                 []byte{0x01},
				SoftwareEnforced: attestation.AuthorizationList{
					Purpose:                []int64{2},
					Padding:                []int64{1, 4},
					EcCurve:                int64p(1),
					RsaPublicExponent:      int64p(65537),
					RollbackResistance:     true,
					ActiveDateTime:         int64p(1700000000000),
					UserAuthType:           int64p(2),
					AuthTimeout:            int64p(300),
					AllowWhileOnBody:       true,
					UnlockedDeviceRequired: true,
					AllApplications:        true,
					ApplicationID:          []byte("app"),
				},
				TeeEnforced: attestation.AuthorizationList{
					TrustedUserPresenceRequired: true,
					TrustedConfirmationRequired: true,
					AttestationIDBrand:          []byte("google"),
					AttestationIDDevice:         []byte("walleye"),
					AttestationIDProduct:        []byte("walleye"),
					AttestationIDSerial:         []byte("HT7"),
					AttestationIDImei:           []byte("35"),
					AttestationIDMeid:           []byte("A1"),
					AttestationIDManufacturer:   []byte("Google"),
					AttestationIDModel:          []byte("Pixel 2"),
					RootOfTrust: &attestation.RootOfTrust{
						VerifiedBootKey:   []byte{0xaa},
						DeviceLocked:      true,
						VerifiedBootState: attestation.VerifiedBootVerified,
						VerifiedBootHash:  []byte{0xbb},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := attestation.Encode(tt.kd)
			require.NoError(t, err)

			decoded, err := attestation.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.kd, decoded)
		})
	}
}

func TestEmptyAuthorizationListEncoding(t *testing.T) {
	encoded, err := der.Marshal(attestation.AuthorizationListAdapter, attestation.AuthorizationList{})
	require.NoError(t, err)
	assert.Equal(t, "3000", hex.EncodeToString(encoded))

	encoded, err = der.Marshal(attestation.AuthorizationListAdapter, attestation.AuthorizationList{
		Purpose:        []int64{2, 3},
		NoAuthRequired: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "3010a1083106020102020103bf8377020500", hex.EncodeToString(encoded))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"MissingFields", "3003020103", der.ErrMissingComponent},
		{"NotASequence", "020103", der.ErrUnexpectedTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := attestation.Decode(mustHex(t, tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, der.IsSyntaxError(err))
		})
	}
}

func TestNullWithContent(t *testing.T) {
	_, err := der.Unmarshal(attestation.AuthorizationListAdapter, mustHex(t, "3007bf837703050100"))
	require.Error(t, err)
	assert.ErrorIs(t, err, der.ErrMalformed)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "StrongBox", attestation.SecurityLevelStrongBox.String())
	assert.Equal(t, "TrustedEnvironment", attestation.SecurityLevelTrustedEnvironment.String())
	assert.Equal(t, "SecurityLevel(7)", attestation.SecurityLevel(7).String())
	assert.Equal(t, "Unverified", attestation.VerifiedBootUnverified.String())
	assert.Equal(t, "VerifiedBootState(9)", attestation.VerifiedBootState(9).String())
}
