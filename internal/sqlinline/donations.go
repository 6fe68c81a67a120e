package sqlinline

const QInsertDonation = `--sql 2f6b1d84-7c30-4e59-9a12-6e8f3a5c0d71
insert into donations(id, campaign_id, name, email, amount_cents, message, is_anonymous, country, created_at)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::bigint, $6::text, $7::boolean, $8::text, $9::timestamptz);
`

const QListCampaignDonations = `--sql 8a4e0c52-1b97-4f68-bd25-7c3d9e6a1f40
select id, name, email, amount_cents, message, is_anonymous, country, created_at
from donations
where campaign_id = $1::uuid
order by created_at asc, id asc;
`

const QListAllDonations = `--sql e7c2a951-0d48-4b36-8f91-4a6b2e8d0c53
select campaign_id, id, name, email, amount_cents, message, is_anonymous, country, created_at
from donations
order by campaign_id asc, created_at asc, id asc;
`
