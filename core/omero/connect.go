// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package omero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/idr/idroi/core/logger"
	"github.com/pkg/errors"
)

// ConnectInfo - where and who to log in as. Host may carry a scheme, https is assumed if not
type ConnectInfo struct {
	Host  string
	Port  int
	User  string
	Pass  string
	Group string // Optional group id to restrict queries to
}

// Client - logged in session with OMERO.web's JSON API. Not safe for concurrent use
type Client struct {
	baseURL string
	http    *http.Client
	csrf    string
	group   string
	log     logger.ILogger

	// Filled in on login
	UserID  int64
	GroupID int64
}

const apiPath = "/api/v0"

// Largest page the JSON API hands out by default config
const pageLimit = 500

type serverInfo struct {
	ID     int64  `json:"id"`
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Server string `json:"server"`
}

type loginResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	EventContext struct {
		UserID    int64  `json:"userId"`
		UserName  string `json:"userName"`
		GroupID   int64  `json:"groupId"`
		GroupName string `json:"groupName"`
	} `json:"eventContext"`
}

func (ci ConnectInfo) baseURL() (string, error) {
	host := strings.TrimSpace(ci.Host)
	if len(host) <= 0 {
		return "", errors.New("no OMERO host specified")
	}

	protocol := "https"
	if strings.HasPrefix(host, "http://") {
		protocol = "http"
		host = strings.TrimPrefix(host, "http://")
	} else {
		host = strings.TrimPrefix(host, "https://")
	}
	host = strings.TrimSuffix(host, "/")

	// Leave default ports off, and don't double up if the host already had one
	if ci.Port > 0 && !strings.Contains(host, ":") &&
		!(protocol == "https" && ci.Port == 443) && !(protocol == "http" && ci.Port == 80) {
		host = host + ":" + strconv.Itoa(ci.Port)
	}

	u := url.URL{Scheme: protocol, Host: host}
	return u.String(), nil
}

// Connect - logs in to OMERO.web. Gets a CSRF token, picks the first configured OMERO server and posts the
// credentials, the session cookie is kept in the client's cookie jar
func Connect(ctx context.Context, info ConnectInfo, timeout time.Duration, log logger.ILogger) (*Client, error) {
	base, err := info.baseURL()
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		group:   info.Group,
		log:     log,
	}

	log.Infof("Connecting to OMERO at %v as %v", base, info.User)

	var token struct {
		Data string `json:"data"`
	}
	if err := c.getJSON(ctx, "/token/", nil, &token); err != nil {
		return nil, errors.Wrap(err, "failed to get CSRF token")
	}
	c.csrf = token.Data

	var servers struct {
		Data []serverInfo `json:"data"`
	}
	if err := c.getJSON(ctx, "/servers/", nil, &servers); err != nil {
		return nil, errors.Wrap(err, "failed to list OMERO servers")
	}
	if len(servers.Data) <= 0 {
		return nil, fmt.Errorf("no OMERO servers configured at %v", base)
	}

	form := url.Values{}
	form.Set("server", strconv.FormatInt(servers.Data[0].ID, 10))
	form.Set("username", info.User)
	form.Set("password", info.Pass)

	var login loginResponse
	if err := c.postForm(ctx, "/login/", form, &login); err != nil {
		return nil, errors.Wrapf(err, "OMERO login failed for user %v", info.User)
	}
	if !login.Success {
		return nil, fmt.Errorf("OMERO login failed for user %v: %v", info.User, login.Message)
	}

	c.UserID = login.EventContext.UserID
	c.GroupID = login.EventContext.GroupID

	log.Infof("Logged in to OMERO server %v as %v (user id %v, group %v)", servers.Data[0].Server, login.EventContext.UserName, c.UserID, login.EventContext.GroupName)
	return c, nil
}
