// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"runtime"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestOsManager_GetOSInfo(t *testing.T) {
	req := require.New(t)

	om := NewOSManager(WithOSManagerLogger(&nolog))
	osInfo, err := om.GetOSInfo()
	req.NoError(err)
	req.NotEmpty(osInfo.Type)
	req.NotEmpty(osInfo.Architecture)
	req.Equal(runtime.GOOS, osInfo.Type)
	req.Equal(runtime.GOARCH, osInfo.Architecture)
}

func TestOsManager_GetOSInfo_Fail(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockOSDetector(ctrl)
	om := NewOSManager(WithOSDetector(d), WithOSManagerLogger(&nolog))
	d.EXPECT().ScanOS().Return(nil, errorx.DataUnavailable.New("error"))
	_, err := om.GetOSInfo()
	req.Error(err)
}

func TestOSInfo_String(t *testing.T) {
	req := require.New(t)

	info := &OSInfo{
		Type:        "linux",
		Version:     "22.04",
		Flavor:      OSFlavorLinuxUbuntu,
		CodeName:    "jammy",
		Description: "Ubuntu 22.04.4 LTS",
	}
	req.Equal("Ubuntu 22.04.4 LTS", info.String())

	info.Description = ""
	req.Equal("ubuntu 22.04 (jammy)", info.String())

	info = &OSInfo{Type: "linux", Flavor: OSFlavorUnknown}
	req.Equal("linux", info.String())
}

func TestOSInfo_IsAptBased(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		flavor   string
		aptBased bool
	}{
		{OSFlavorLinuxUbuntu, true},
		{OSFlavorLinuxDebian, true},
		{OSFlavorLinuxRhel, false},
		{OSFlavorLinuxFedora, false},
		{OSFlavorMacSonoma, false},
		{OSFlavorUnknown, false},
		{"", false},
	}

	for _, tt := range tests {
		info := &OSInfo{Flavor: tt.flavor}
		req.Equal(tt.aptBased, info.IsAptBased(), "flavor %q", tt.flavor)
	}
}
